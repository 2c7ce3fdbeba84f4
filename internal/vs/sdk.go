package vs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-version"

	"github.com/qobs-build/vsgen/internal/msg"
)

// SdkKind says how the Windows SDK was chosen.
type SdkKind int

const (
	// SdkInherited81 leaves the SDK to the toolset's own default.
	SdkInherited81 SdkKind = iota
	// SdkExplicit81 pins the Windows 8.1 SDK.
	SdkExplicit81
	// SdkWindows10 targets an installed Windows 10 SDK.
	SdkWindows10
)

func (k SdkKind) String() string {
	switch k {
	case SdkInherited81:
		return "inherited"
	case SdkExplicit81:
		return "8.1"
	case SdkWindows10:
		return "windows10"
	}
	return "unknown"
}

// SdkChoice is the Windows SDK selected during system initialization.
// Version is empty when projects should not name one.
type SdkChoice struct {
	Kind    SdkKind
	Version string
}

// InitializeWindows selects the Windows SDK for a desktop target.
func (g *Generator) InitializeWindows() error {
	if g.isWin81SDKInstalled() {
		// newer families would otherwise move to a Windows 10 SDK on their own
		if g.version.UsesHostDefaults() && !versionGreater(g.systemVersion, "8.1") {
			g.sdk = SdkChoice{Kind: SdkExplicit81, Version: "8.1"}
			return nil
		}
		return g.initializeWindowsInherited()
	}
	return g.selectWindows10SDK(false)
}

func (g *Generator) initializeWindowsInherited() error {
	if strings.HasPrefix(g.systemVersion, "10.0") {
		return g.selectWindows10SDK(true)
	}
	g.sdk = SdkChoice{Kind: SdkInherited81}
	return nil
}

func (g *Generator) isWin81SDKInstalled() bool {
	if g.discovery.IsWin81SDKInstalled() {
		return true
	}
	for _, root := range []RegistryRoot{LocalMachine, CurrentUser} {
		kits, ok := g.registry.StringValue(root, kitsRootsKey, "KitsRoot81")
		if !ok || kits == "" {
			continue
		}
		if fileExists(filepath.Join(kits, "include", "um", "windows.h")) {
			return true
		}
	}
	return false
}

// Windows10SDKs lists installed Windows 10 SDK versions, highest first.
func (g *Generator) Windows10SDKs() []string {
	kits, ok := lookupHives(g.registry, kitsRootsKey, "KitsRoot10")
	if !ok {
		return nil
	}

	matches, err := doublestar.Glob(os.DirFS(kits), "Include/*/um/windows.h", doublestar.WithFilesOnly())
	if err != nil {
		return nil
	}

	sdks := make([]string, 0, len(matches))
	for _, m := range matches {
		// Include/<version>/um/windows.h
		parts := strings.Split(m, "/")
		if len(parts) == 4 {
			sdks = append(sdks, parts[1])
		}
	}
	slices.SortFunc(sdks, func(a, b string) int { return compareVersions(b, a) })
	return sdks
}

func (g *Generator) windows10SDKVersion() string {
	sdks := g.Windows10SDKs()
	if len(sdks) == 0 {
		return ""
	}
	// 10.0.17763 names the same SDK as 10.0.17763.0
	for _, sdk := range sdks {
		if compareVersions(sdk, g.systemVersion) == 0 {
			return sdk
		}
	}
	return sdks[0]
}

func (g *Generator) selectWindows10SDK(required bool) error {
	v := g.windows10SDKVersion()
	if v == "" && required {
		return fatal(g.issuer, ErrWindows10SDKNotFound,
			"Could not find an appropriate version of the Windows 10 SDK installed on this machine")
	}
	if v != "" && g.systemVersion != "" && compareVersions(v, g.systemVersion) != 0 {
		g.issuer.Issue(msg.SeverityInfo, "Selecting Windows SDK version "+v+" to target Windows "+g.systemVersion+".")
	}
	g.sdk = SdkChoice{Kind: SdkWindows10, Version: v}
	return nil
}

// nsightTegraVersion returns the installed legacy Android toolchain version.
func (g *Generator) nsightTegraVersion() string {
	v, _ := g.registry.StringValue(LocalMachine, nsightTegraKey, "Version")
	return v
}

// compareVersions orders numerically when both sides parse and falls back to
// plain string order otherwise. Parseable versions sort above the rest.
func compareVersions(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}

// versionGreater reports whether a is a strictly greater version than b. An
// empty or malformed a is never greater.
func versionGreater(a, b string) bool {
	va, err := version.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := version.NewVersion(b)
	if err != nil {
		return true
	}
	return va.GreaterThan(vb)
}
