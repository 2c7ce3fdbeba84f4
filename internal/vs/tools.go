package vs

import "os"

// FindMSBuildCommand returns the MSBuild executable of the resolved instance,
// or the bare name for a PATH lookup.
func (g *Generator) FindMSBuildCommand() string {
	if vs, ok := g.instancePath(); ok {
		for _, candidate := range []string{
			vs + "/MSBuild/Current/Bin/MSBuild.exe",
			vs + "/MSBuild/15.0/Bin/MSBuild.exe",
		} {
			if fileExists(candidate) {
				return candidate
			}
		}
	}
	return "MSBuild.exe"
}

// FindDevEnvCommand returns devenv.com of the resolved instance, or the bare
// name for a PATH lookup.
func (g *Generator) FindDevEnvCommand() string {
	if vs, ok := g.instancePath(); ok {
		devenv := vs + "/Common7/IDE/devenv.com"
		if fileExists(devenv) {
			return devenv
		}
	}
	return "devenv.com"
}

// FindVCTargetsPath locates the VCTargets directory of the resolved instance.
// Both outcomes are remembered until Reset.
func (g *Generator) FindVCTargetsPath() bool {
	if !g.vcTargets.probed {
		g.vcTargets.probed = true
		if vs, ok := g.instancePath(); ok {
			if p := vs + "/Common7/IDE/VC/VCTargets"; isDir(p) {
				g.vcTargets.path = p
			}
		}
	}
	return g.vcTargets.path != ""
}

// VCTargetsPath returns the path found by FindVCTargetsPath.
func (g *Generator) VCTargetsPath() string { return g.vcTargets.path }

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
