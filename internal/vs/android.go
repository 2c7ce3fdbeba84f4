package vs

import (
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

const androidAppTypeDir = "/Common7/IDE/VC/VCTargets/Application Type/Android"

// InitializeAndroidWorkflow finds the highest installed Visual Studio Android
// workflow and its highest Clang toolchain for the configured platform. Once
// it succeeds, later calls return nil without probing.
//
// "Highest" means last in lexicographic order, so "15.9" is chosen over
// "15.10".
func (g *Generator) InitializeAndroidWorkflow() error {
	if g.android.WorkflowVersion != "" {
		return nil
	}

	vs, ok := g.instancePath()
	if !ok {
		return fatal(g.issuer, ErrNoVSInstance, "VisualStudio not installed!")
	}

	appType := vs + androidAppTypeDir
	if !isDir(appType) {
		return soft(ErrAndroidNotInstalled, "%s is not a directory", appType)
	}

	platform := g.defs.Definition(VarGeneratorPlatform)
	if platform == "" {
		return fatal(g.issuer, ErrPlatformNotConfigured, VarGeneratorPlatform+" not set!")
	}

	fsys := os.DirFS(appType)
	workflow, ok := lastDirMatch(fsys, "[0-9]*.[0-9]*")
	if !ok {
		return soft(ErrNoAndroidWorkflow, "no Android workflow found in %s", appType)
	}

	toolsets, err := fs.Sub(fsys, path.Join(workflow, "Platforms", platform, "PlatformToolsets"))
	if err != nil {
		return fatal(g.issuer, ErrNoClangToolchain, "Could not find any clang toolchains for MSVS/Android work flow!")
	}
	toolchain, ok := lastDirMatch(toolsets, "Clang*")
	if !ok {
		return fatal(g.issuer, ErrNoClangToolchain, "Could not find any clang toolchains for MSVS/Android work flow!")
	}

	g.android.WorkflowVersion = path.Base(workflow)
	g.android.ClangToolchainName = path.Base(toolchain)

	g.android.APILevel = g.defs.Definition(VarAndroidAPILevel)
	if g.android.APILevel == "" {
		g.android.APILevel = defaultAndroidAPILevel
	}
	return nil
}

// lastDirMatch globs pattern in fsys and scans the ascending listing from the
// end, returning the first match that is a directory.
func lastDirMatch(fsys fs.FS, pattern string) (string, bool) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return "", false
	}
	slices.Sort(matches)
	for i := len(matches) - 1; i >= 0; i-- {
		if st, err := fs.Stat(fsys, matches[i]); err == nil && st.IsDir() {
			return matches[i], true
		}
	}
	return "", false
}
