package gen

import (
	"io"

	"github.com/qobs-build/vsgen/internal/vs"
)

// Generator writes a build tree for resolved generator state and drives the
// native build tool over it.
type Generator interface {
	AddTarget(name string, commands []string)
	Generate(buildDir string) (string, error)
	BuildFile() string
	Invoke(buildDir, configuration string, devenv bool) error
}

// Toolchain is the resolved Visual Studio state project files are written
// from. *vs.Generator implements it.
type Toolchain interface {
	Name() string
	WriteSLNHeader(w io.Writer) error
	PlatformName() string
	PlatformToolset() string
	ToolsetHostArchitecture() string
	ToolsetVersion() string
	AuxiliaryToolset(version string) string
	WindowsTargetPlatformVersion() string
	Android() vs.AndroidWorkflowState
	FindMSBuildCommand() string
	FindDevEnvCommand() string
}

var _ Toolchain = (*vs.Generator)(nil)
