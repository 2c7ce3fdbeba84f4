package vs

import "fmt"

// Version identifies a Visual Studio release line.
type Version int

const (
	VS9 Version = iota
	VS10
	VS11
	VS12
	VS14
	VS15
	VS16
)

type versionInfo struct {
	major   int
	toolset string
	year    string
}

var versionTable = [...]versionInfo{
	VS9:  {major: 9, toolset: "v90", year: "2008"},
	VS10: {major: 10, toolset: "v100", year: "2010"},
	VS11: {major: 11, toolset: "v110", year: "2012"},
	VS12: {major: 12, toolset: "v120", year: "2013"},
	VS14: {major: 14, toolset: "v140", year: "2015"},
	VS15: {major: 15, toolset: "v141", year: "2017"},
	VS16: {major: 16, toolset: "v142", year: "2019"},
}

func (v Version) info() versionInfo {
	if v < VS9 || int(v) >= len(versionTable) {
		panic(fmt.Sprintf("vs: unknown Visual Studio version %d", int(v)))
	}
	return versionTable[v]
}

// Major returns the product major version number, e.g. 16 for VS16.
func (v Version) Major() int { return v.info().major }

// DefaultToolset returns the platform toolset shipped with the version.
func (v Version) DefaultToolset() string { return v.info().toolset }

// Year returns the marketing year of the release.
func (v Version) Year() string { return v.info().year }

// UsesHostDefaults reports whether the version picks its default platform and
// tools architecture from the host rather than from the generator name.
func (v Version) UsesHostDefaults() bool { return v >= VS16 }

func (v Version) String() string {
	return fmt.Sprintf("VS%d", v.Major())
}

// defaultHostArchitecture returns the preferred tools architecture. Only
// versions that follow the host report one.
func defaultHostArchitecture(v Version) string {
	if !v.UsesHostDefaults() {
		return ""
	}
	return HostArchitecture()
}
