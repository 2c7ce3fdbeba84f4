package vs

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/qobs-build/vsgen/internal/msg"
)

// Configuration variables read and written by the generator.
const (
	VarGeneratorInstance = "GENERATOR_INSTANCE"
	VarGeneratorPlatform = "GENERATOR_PLATFORM"
	VarGeneratorToolset  = "GENERATOR_TOOLSET"
	VarSystemName        = "SYSTEM_NAME"
	VarSystemVersion     = "SYSTEM_VERSION"
	VarAndroidAPILevel   = "ANDROID_NATIVE_API_LEVEL"
)

const defaultAndroidAPILevel = "26"

// Definitions is the configuration state the generator reads user requests
// from and persists its decisions to.
type Definitions interface {
	Definition(name string) string
	SetCacheEntry(name, value, doc string)
}

// MapDefinitions is an in-memory Definitions.
type MapDefinitions map[string]string

func (m MapDefinitions) Definition(name string) string { return m[name] }

func (m MapDefinitions) SetCacheEntry(name, value, _ string) { m[name] = value }

// Options configures the services a Generator talks to. Zero fields get the
// real host implementations.
type Options struct {
	Discovery   Discovery
	Registry    Registry
	Issuer      msg.Issuer
	Definitions Definitions
}

// InstanceSelection tracks which Visual Studio instance the generator uses.
type InstanceSelection struct {
	ExplicitID   string
	ResolvedPath string
}

// AndroidWorkflowState is filled once the Android workflow has been probed.
type AndroidWorkflowState struct {
	IsAndroidTarget    bool
	WorkflowVersion    string
	ClangToolchainName string
	APILevel           string
}

type vcTargetsMemo struct {
	probed bool
	path   string
}

// Generator resolves Visual Studio instance, toolset, platform and SDK state
// for one configuration run. It is not safe for concurrent use.
type Generator struct {
	id        Identity
	version   Version
	discovery Discovery
	registry  Registry
	issuer    msg.Issuer
	defs      Definitions

	instance    InstanceSelection
	android     AndroidWorkflowState
	nsightTegra string

	systemName    string
	systemVersion string

	defaultPlatform string
	platform        string

	defaultToolset  string
	defaultHostArch string
	toolset         ToolsetSpec

	sdk       SdkChoice
	vcTargets vcTargetsMemo
}

// New creates the generator named by raw, e.g. "Visual Studio 16 2019".
func New(raw string, opts Options) (*Generator, error) {
	id, ok := Parse(raw)
	if !ok {
		err := errors.Mark(errors.Newf("could not create generator %q", raw), ErrUnknownGenerator)
		return nil, errors.WithHintf(err, "known generators: %s", strings.Join(GeneratorNames(), ", "))
	}

	v := id.Version()
	g := &Generator{
		id:             id,
		version:        v,
		discovery:      opts.Discovery,
		registry:       opts.Registry,
		issuer:         opts.Issuer,
		defs:           opts.Definitions,
		defaultToolset: v.DefaultToolset(),
		android:        AndroidWorkflowState{APILevel: defaultAndroidAPILevel},
	}
	if g.discovery == nil {
		g.discovery = NewSetupHelper(v.Major(), nil)
	}
	if g.registry == nil {
		g.registry = SystemRegistry{}
	}
	if g.issuer == nil {
		g.issuer = &msg.Console{}
	}
	if g.defs == nil {
		g.defs = MapDefinitions{}
	}

	switch {
	case v.UsesHostDefaults():
		g.defaultPlatform = HostPlatformName()
		g.defaultHostArch = defaultHostArchitecture(v)
	case id.Platform() != "":
		g.defaultPlatform = id.Platform()
	default:
		g.defaultPlatform = "Win32"
	}
	g.platform = g.defaultPlatform
	return g, nil
}

// Name returns the canonical generator name.
func (g *Generator) Name() string { return g.id.CanonicalName() }

// Version returns the Visual Studio release line of the generator.
func (g *Generator) Version() Version { return g.version }

// Identity returns the parsed generator name.
func (g *Generator) Identity() Identity { return g.id }

// MatchesGeneratorName reports whether raw names this generator.
func (g *Generator) MatchesGeneratorName(raw string) bool {
	id, ok := Parse(raw)
	return ok && id.CanonicalName() == g.Name()
}

// Reset begins a new configuration run. Memoized filesystem lookups are
// dropped; user requests already applied are kept.
func (g *Generator) Reset() {
	g.vcTargets = vcTargetsMemo{}
	g.instance.ResolvedPath = ""
}

// SetGeneratorPlatform applies a platform requested with -A. An empty
// request keeps the default.
func (g *Generator) SetGeneratorPlatform(p string) error {
	if g.android.IsAndroidTarget {
		switch p {
		case "ARM64", "ARM", "x86_64", "x86":
		default:
			return fatal(g.issuer, ErrPlatformUnsupported,
				"Building for Android with '"+g.Name()+"' Platform '"+p+"' not supported. Only ARM, ARM64, x86, x86_64")
		}
	}

	if p == "" {
		return nil
	}
	if named := g.id.Platform(); named != "" && named != p {
		return fatal(g.issuer, ErrPlatformConflict,
			"Generator\n  "+g.Name()+"\nspecifies platform\n  "+named+"\nin its name, but platform\n  "+p+"\nwas requested.")
	}
	g.platform = p
	return nil
}

// PlatformName returns the solution platform projects are generated for.
func (g *Generator) PlatformName() string { return g.platform }

// DefaultPlatformName returns the platform used when none is requested.
func (g *Generator) DefaultPlatformName() string { return g.defaultPlatform }

// Instance returns the current instance selection.
func (g *Generator) Instance() InstanceSelection { return g.instance }

// Android returns the Android workflow state.
func (g *Generator) Android() AndroidWorkflowState { return g.android }

// AndroidAPILevel returns the API level projects target on Android.
func (g *Generator) AndroidAPILevel() string { return g.android.APILevel }

// NsightTegraVersion returns the legacy Android toolchain version in use, if
// the generator fell back to it.
func (g *Generator) NsightTegraVersion() string { return g.nsightTegra }

// SystemName returns the target system name, empty for the host.
func (g *Generator) SystemName() string { return g.systemName }

// SystemVersion returns the requested target system version.
func (g *Generator) SystemVersion() string { return g.systemVersion }

// SDK returns the Windows SDK choice made during system initialization.
func (g *Generator) SDK() SdkChoice { return g.sdk }

// WindowsTargetPlatformVersion is the SDK version written to projects.
func (g *Generator) WindowsTargetPlatformVersion() string { return g.sdk.Version }

// WriteSLNHeader writes the two-line solution file header.
func (g *Generator) WriteSLNHeader(w io.Writer) error {
	header := "Microsoft Visual Studio Solution File, Format Version 12.00\n"
	switch g.version {
	case VS15:
		header += "# Visual Studio 15\n"
	default:
		header += "# Visual Studio Version " + strconv.Itoa(g.version.Major()) + "\n"
	}
	_, err := io.WriteString(w, header)
	return err
}
