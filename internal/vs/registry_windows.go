//go:build windows

package vs

import "golang.org/x/sys/windows/registry"

// SystemRegistry reads the Windows registry.
type SystemRegistry struct{}

func (SystemRegistry) StringValue(root RegistryRoot, key, name string) (string, bool) {
	hive := registry.LOCAL_MACHINE
	if root == CurrentUser {
		hive = registry.CURRENT_USER
	}

	k, err := registry.OpenKey(hive, key, registry.QUERY_VALUE|registry.WOW64_32KEY)
	if err != nil {
		return "", false
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return v, true
}
