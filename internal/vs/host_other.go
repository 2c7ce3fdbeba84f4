//go:build !windows

package vs

func isWow64Process() bool { return false }
