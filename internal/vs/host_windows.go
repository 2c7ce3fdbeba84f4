//go:build windows

package vs

import "golang.org/x/sys/windows"

func isWow64Process() bool {
	var wow64 bool
	if err := windows.IsWow64Process(windows.CurrentProcess(), &wow64); err != nil {
		return false
	}
	return wow64
}
