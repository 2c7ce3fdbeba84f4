//go:build !windows

package vs

// SystemRegistry has no values outside Windows.
type SystemRegistry struct{}

func (SystemRegistry) StringValue(RegistryRoot, string, string) (string, bool) {
	return "", false
}
