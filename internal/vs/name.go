package vs

import "strings"

// family describes one Visual Studio generator family: its display name and
// what may follow it in a generator name.
type family struct {
	version Version
	// display name including the year, e.g. "Visual Studio 15 2017"
	name string
	// platform tokens accepted as a name suffix, mapped to platform names.
	// Families that take the platform from -A accept none.
	suffixes []suffix
	brief    string
}

type suffix struct {
	token    string
	platform string
}

var families = []family{
	{
		version: VS15,
		name:    "Visual Studio 15 2017",
		suffixes: []suffix{
			{token: "Win64", platform: "x64"},
			{token: "ARM", platform: "ARM"},
			{token: "ARM64", platform: "ARM64"},
		},
		brief: `Generates Visual Studio 2017 project files.  Optional [arch] can be "Win64", "ARM" or "ARM64".`,
	},
	{
		version: VS16,
		name:    "Visual Studio 16 2019",
		brief:   "Generates Visual Studio 2019 project files.  Use -A option to specify architecture.",
	},
}

// knownPlatforms are the solution platforms every family can target.
var knownPlatforms = []string{"x64", "Win32", "ARM", "ARM64"}

// prefix is the display name without the trailing " <year>".
func (f *family) prefix() string {
	return strings.TrimSuffix(f.name, " "+f.version.Year())
}

func (f *family) year() string {
	return f.version.Year()
}

func (f *family) platformFor(token string) (string, bool) {
	for _, s := range f.suffixes {
		if s.token == token {
			return s.platform, true
		}
	}
	return "", false
}

// parse matches raw against the family. A false result means "not this
// family" and is not an error.
func (f *family) parse(raw string) (Identity, bool) {
	rest, ok := strings.CutPrefix(raw, f.prefix())
	if !ok {
		return Identity{}, false
	}

	id := Identity{family: f}
	if after, ok := strings.CutPrefix(rest, " "+f.year()); ok {
		id.Year = f.year()
		rest = after
	}
	if rest == "" {
		return id, true
	}

	token, ok := strings.CutPrefix(rest, " ")
	if !ok {
		return Identity{}, false
	}
	platform, ok := f.platformFor(token)
	if !ok {
		return Identity{}, false
	}
	id.PlatformSuffix = token
	id.platform = platform
	return id, true
}

// Identity is a parsed generator name.
type Identity struct {
	family *family
	// Year is the year token as typed, empty if it was omitted.
	Year string
	// PlatformSuffix is the trailing platform token, e.g. "Win64".
	PlatformSuffix string
	platform       string
}

// Family returns the family display name, year included.
func (id Identity) Family() string {
	if id.family == nil {
		return ""
	}
	return id.family.name
}

// Version returns the Visual Studio version of the identity's family.
func (id Identity) Version() Version { return id.family.version }

// Platform returns the solution platform named by the suffix, if any.
func (id Identity) Platform() string { return id.platform }

// CanonicalName is the display name followed by the platform suffix.
func (id Identity) CanonicalName() string {
	if id.PlatformSuffix == "" {
		return id.Family()
	}
	return id.Family() + " " + id.PlatformSuffix
}

// Parse tries raw against every known family in turn.
func Parse(raw string) (Identity, bool) {
	for i := range families {
		if id, ok := families[i].parse(raw); ok {
			return id, true
		}
	}
	return Identity{}, false
}

// GeneratorInfo documents one generator family.
type GeneratorInfo struct {
	Name  string
	Brief string
}

// Generators lists the known generator families for help output.
func Generators() []GeneratorInfo {
	infos := make([]GeneratorInfo, 0, len(families))
	for _, f := range families {
		name := f.name
		if len(f.suffixes) > 0 {
			name += " [arch]"
		}
		infos = append(infos, GeneratorInfo{Name: name, Brief: f.brief})
	}
	return infos
}

// GeneratorNames returns the plain display name of every family.
func GeneratorNames() []string {
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.name)
	}
	return names
}

// GeneratorNamesWithPlatform returns every name that carries a platform suffix.
func GeneratorNamesWithPlatform() []string {
	var names []string
	for _, f := range families {
		for _, s := range f.suffixes {
			names = append(names, f.name+" "+s.token)
		}
	}
	return names
}

// KnownPlatforms returns the platforms accepted by -A.
func KnownPlatforms() []string {
	return append([]string(nil), knownPlatforms...)
}
