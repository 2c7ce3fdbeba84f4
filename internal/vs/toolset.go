package vs

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// ToolsetSpec is a parsed -T value: "<name>[,host=<arch>][,version=<ver>]".
type ToolsetSpec struct {
	Name    string
	Host    string
	Version string
}

// ParseToolset parses a toolset specification. The name may be omitted when
// only fields are given, e.g. "host=x64".
func ParseToolset(ts string) (ToolsetSpec, error) {
	var spec ToolsetSpec
	if ts == "" {
		return spec, nil
	}

	fields := strings.Split(ts, ",")
	if !strings.Contains(fields[0], "=") {
		spec.Name = fields[0]
		fields = fields[1:]
	}

	seen := make(map[string]bool)
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return spec, errors.Mark(errors.Newf("field %q is not of the form key=value", field), ErrInvalidToolset)
		}
		if seen[key] {
			return spec, errors.Mark(errors.Newf("field %q appears more than once", key), ErrInvalidToolset)
		}
		seen[key] = true

		switch key {
		case "host":
			spec.Host = value
		case "version":
			spec.Version = value
		default:
			return spec, errors.Mark(errors.Newf("field %q is not recognized", key), ErrInvalidToolset)
		}
	}
	return spec, nil
}

// SetGeneratorToolset applies a toolset requested with -T.
func (g *Generator) SetGeneratorToolset(ts string) error {
	if g.android.IsAndroidTarget && ts == "" && g.defaultToolset == "" {
		return fatal(g.issuer, ErrToolsetRequired,
			g.Name()+" MSVS Android requires "+VarGeneratorToolset+" to be set.")
	}

	spec, err := ParseToolset(ts)
	if err != nil {
		return fatal(g.issuer, ErrInvalidToolset,
			"Generator\n  "+g.Name()+"\ngiven toolset specification\n  "+ts+"\nthat is invalid: "+err.Error())
	}

	if spec.Version != "" && !g.IsDefaultToolset(spec.Version) {
		props := g.AuxiliaryToolset(spec.Version)
		if props == "" || !fileExists(props) {
			return fatal(g.issuer, ErrToolsetVersionNotFound,
				"Generator\n  "+g.Name()+"\ngiven toolset and version specification\n  "+ts+"\ndoes not seem to be installed at\n  "+props)
		}
	}

	g.toolset = spec
	return nil
}

// PlatformToolset returns the requested toolset name, or the default.
func (g *Generator) PlatformToolset() string {
	if g.toolset.Name != "" {
		return g.toolset.Name
	}
	return g.defaultToolset
}

// DefaultToolset returns the toolset used when none is requested. On Android
// this is the Clang toolchain found by the workflow probe.
func (g *Generator) DefaultToolset() string { return g.defaultToolset }

// ToolsetHostArchitecture returns the PreferredToolArchitecture to emit.
func (g *Generator) ToolsetHostArchitecture() string {
	if g.toolset.Host != "" {
		return g.toolset.Host
	}
	return g.defaultHostArch
}

// ToolsetVersion returns the requested VC tools version, if any.
func (g *Generator) ToolsetVersion() string { return g.toolset.Version }

var majorMinorRegex = regexp.MustCompile(`[0-9][0-9]\.[0-9]+`)

// IsDefaultToolset reports whether version names the instance's default VC
// tools. An empty version always does.
func (g *Generator) IsDefaultToolset(version string) bool {
	if version == "" {
		return true
	}
	vcTools, ok := g.discovery.GetVCToolsetVersion()
	if !ok {
		return false
	}
	if !majorMinorRegex.MatchString(version) || !majorMinorRegex.MatchString(vcTools) {
		return false
	}
	majorMinor := vcTools
	if len(vcTools) > 3 {
		if i := strings.IndexByte(vcTools[3:], '.'); i >= 0 {
			majorMinor = vcTools[:3+i]
		}
	}
	return version == majorMinor
}

// AuxiliaryToolset returns the props file that selects a non-default VC tools
// version, or "" when there is no version or instance.
func (g *Generator) AuxiliaryToolset(version string) string {
	if version == "" {
		return ""
	}
	vs, ok := g.instancePath()
	if !ok {
		return ""
	}
	return vs + "/VC/Auxiliary/Build/" + version + "/Microsoft.VCToolsVersion." + version + ".props"
}
