package vs

import "runtime"

var (
	hostArch = runtime.GOARCH
	isWow64  = isWow64Process
)

// HostPlatformName returns the solution platform matching the host machine.
func HostPlatformName() string {
	switch hostArch {
	case "arm64":
		return "ARM64"
	case "arm":
		return "ARM"
	case "amd64":
		return "x64"
	}
	if isWow64() {
		return "x64"
	}
	return "Win32"
}

// HostArchitecture returns the PreferredToolArchitecture value for the host.
// ARM hosts have no native toolchain preference.
func HostArchitecture() string {
	switch hostArch {
	case "arm64", "arm":
		return ""
	case "amd64":
		return "x64"
	}
	if isWow64() {
		return "x64"
	}
	return "x86"
}
