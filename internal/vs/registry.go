package vs

// RegistryRoot selects the hive a registry lookup starts from.
type RegistryRoot int

const (
	LocalMachine RegistryRoot = iota
	CurrentUser
)

func (r RegistryRoot) String() string {
	if r == CurrentUser {
		return "HKEY_CURRENT_USER"
	}
	return "HKEY_LOCAL_MACHINE"
}

// Registry reads string values. Lookups always use the 32-bit view, where
// the SDK installers register themselves.
type Registry interface {
	StringValue(root RegistryRoot, key, name string) (string, bool)
}

const (
	kitsRootsKey   = `SOFTWARE\Microsoft\Windows Kits\Installed Roots`
	nsightTegraKey = `SOFTWARE\NVIDIA Corporation\Nsight Tegra`
)

// lookupHives returns the first value found under HKLM, then HKCU.
func lookupHives(r Registry, key, name string) (string, bool) {
	for _, root := range []RegistryRoot{LocalMachine, CurrentUser} {
		if v, ok := r.StringValue(root, key, name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
