package vs

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/qobs-build/vsgen/internal/msg"
)

// Target system names understood by SetSystemName.
const (
	SystemWindows      = "Windows"
	SystemWindowsStore = "WindowsStore"
	SystemAndroid      = "Android"
)

// SetSystemName records the target system and initializes toolset and SDK
// state for it. An empty name targets the host.
func (g *Generator) SetSystemName(name, version string) error {
	g.systemName = name
	g.systemVersion = version
	return g.InitializeSystem()
}

// InitializeSystem prepares generator state for the recorded target system.
func (g *Generator) InitializeSystem() error {
	switch g.systemName {
	case SystemAndroid:
		return g.initializeAndroid()
	case "", SystemWindows:
		g.android.IsAndroidTarget = false
		return g.InitializeWindows()
	case SystemWindowsStore:
		g.android.IsAndroidTarget = false
		return g.initializeWindowsStore()
	}
	return fatal(g.issuer, ErrSystemUnsupported,
		"Generator\n  "+g.Name()+"\ndoes not support "+VarSystemName+" '"+g.systemName+"'.")
}

func (g *Generator) initializeAndroid() error {
	if err := g.InitializeAndroidWorkflow(); err != nil {
		if !errors.IsAny(err, ErrAndroidNotInstalled, ErrNoAndroidWorkflow) {
			return err
		}
		if v := g.nsightTegraVersion(); v != "" {
			g.nsightTegra = v
			g.issuer.Issue(msg.SeverityInfo, "Using Nsight Tegra "+v+" for Android.")
			g.android.IsAndroidTarget = false
			return g.InitializeWindows()
		}
		return fatal(g.issuer, ErrWorkflowNotInstalled,
			VarSystemName+" is '"+g.systemName+"' but 'Visual C++ for Cross Platform Mobile Development (Android)' is not installed.")
	}

	if g.id.Platform() != "" {
		return fatal(g.issuer, ErrSystemMismatch,
			VarSystemName+" is '"+g.systemName+"' but GENERATOR specifies a platform too: '"+g.Name()+"'")
	}

	g.android.IsAndroidTarget = true
	g.defaultToolset = g.android.ClangToolchainName

	// utility projects still need some valid SDK reference
	return g.selectWindows10SDK(false)
}

func (g *Generator) initializeWindowsStore() error {
	ts, err := g.SelectWindowsStoreToolset()
	if err != nil {
		g.issuer.Issue(msg.SeverityFatal, err.Error())
		return err
	}
	g.defaultToolset = ts
	return g.selectWindows10SDK(true)
}

// SelectWindowsStoreToolset returns the toolset for a Windows Store target.
// Only Windows 10 targets are supported, and both the Windows 10 SDK and the
// desktop toolset must be installed.
func (g *Generator) SelectWindowsStoreToolset() (string, error) {
	if !strings.HasPrefix(g.systemVersion, "10.0") {
		return "", soft(ErrSystemUnsupported,
			"%s '%s' version '%s' is not supported by %s", VarSystemName, SystemWindowsStore, g.systemVersion, g.Name())
	}
	if !g.discovery.IsWin10SDKInstalled() || !g.discovery.IsVSInstalled() {
		return "", soft(ErrStoreToolsetNotInstalled,
			"%s requires the Windows 10 SDK and the desktop C++ toolset to target %s", g.Name(), SystemWindowsStore)
	}
	return g.version.DefaultToolset(), nil
}
