package gen

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qobs-build/vsgen/internal/vs"
)

type fakeToolchain struct {
	platform string
	toolset  string
	hostArch string
	version  string
	aux      string
	sdk      string
	android  vs.AndroidWorkflowState
}

func (f fakeToolchain) Name() string { return "Visual Studio 16 2019" }

func (f fakeToolchain) WriteSLNHeader(w io.Writer) error {
	_, err := io.WriteString(w, "Microsoft Visual Studio Solution File, Format Version 12.00\n# Visual Studio Version 16\n")
	return err
}

func (f fakeToolchain) PlatformName() string                 { return f.platform }
func (f fakeToolchain) PlatformToolset() string              { return f.toolset }
func (f fakeToolchain) ToolsetHostArchitecture() string      { return f.hostArch }
func (f fakeToolchain) ToolsetVersion() string               { return f.version }
func (f fakeToolchain) WindowsTargetPlatformVersion() string { return f.sdk }
func (f fakeToolchain) Android() vs.AndroidWorkflowState     { return f.android }
func (f fakeToolchain) FindMSBuildCommand() string           { return "MSBuild.exe" }
func (f fakeToolchain) FindDevEnvCommand() string            { return "devenv.com" }

func (f fakeToolchain) AuxiliaryToolset(version string) string {
	if version == "" {
		return ""
	}
	return f.aux
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSolutionGenerate(t *testing.T) {
	dir := t.TempDir()
	g := NewSolutionGen("hello", fakeToolchain{platform: "x64", toolset: "v142", hostArch: "x64", sdk: "10.0.19041.0"}, nil)
	g.AddTarget("hello", []string{"echo hello"})
	g.AddTarget("assets", nil)

	sln, err := g.Generate(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello.sln"), sln)

	text := readFile(t, sln)
	assert.True(t, strings.HasPrefix(text, "Microsoft Visual Studio Solution File, Format Version 12.00\n# Visual Studio Version 16\nProject("))
	assert.Contains(t, text, `"assets", "assets\assets.vcxproj"`)
	assert.Contains(t, text, "\t\tDebug|x64 = Debug|x64\n")
	assert.Contains(t, text, "\t\tRelease|x64 = Release|x64\n")
	assert.Less(t, strings.Index(text, `"assets"`), strings.Index(text, `"hello"`))

	proj := readFile(t, filepath.Join(dir, "hello", "hello.vcxproj"))
	assert.Contains(t, proj, "<PlatformToolset>v142</PlatformToolset>")
	assert.Contains(t, proj, "<WindowsTargetPlatformVersion>10.0.19041.0</WindowsTargetPlatformVersion>")
	assert.Contains(t, proj, "<PreferredToolArchitecture>x64</PreferredToolArchitecture>")
	assert.Contains(t, proj, "<ConfigurationType>Utility</ConfigurationType>")
	assert.Contains(t, proj, "<Command>echo hello</Command>")
	assert.NotContains(t, proj, "ApplicationType")

	assets := readFile(t, filepath.Join(dir, "assets", "assets.vcxproj"))
	assert.NotContains(t, assets, "PostBuildEvent")
}

func TestSolutionStableGUIDs(t *testing.T) {
	tc := fakeToolchain{platform: "Win32", toolset: "v141"}
	a := NewSolutionGen("app", tc, nil)
	b := NewSolutionGen("app", tc, nil)
	other := NewSolutionGen("lib", tc, nil)

	assert.Equal(t, a.projectGUID("app"), b.projectGUID("app"))
	assert.NotEqual(t, a.projectGUID("app"), a.projectGUID("tests"))
	assert.NotEqual(t, a.projectGUID("app"), other.projectGUID("app"))
	assert.Equal(t, strings.ToUpper(a.projectGUID("app")), a.projectGUID("app"))
}

func TestSolutionAndroidProject(t *testing.T) {
	tc := fakeToolchain{
		platform: "ARM64",
		toolset:  "Clang_5_0",
		sdk:      "10.0.17763.0",
		android:  vs.AndroidWorkflowState{IsAndroidTarget: true, WorkflowVersion: "3.0", ClangToolchainName: "Clang_5_0", APILevel: "26"},
	}
	g := NewSolutionGen("droid", tc, []string{"Debug"})
	p := g.project(utilityTarget{name: "droid"})

	globals := p.PropertyGroups[0]
	assert.Equal(t, "Android", globals.ApplicationType)
	assert.Equal(t, "3.0", globals.ApplicationTypeRevision)
	assert.Equal(t, "android-26", globals.AndroidAPILevel)
	require.Len(t, p.ItemGroups[0].ProjectConfigurations, 1)
	assert.Equal(t, "Debug|ARM64", p.ItemGroups[0].ProjectConfigurations[0].Include)
}

func TestSolutionAuxiliaryToolsetImport(t *testing.T) {
	tc := fakeToolchain{platform: "x64", toolset: "v142", version: "14.20", aux: "C:/VS/VC/Auxiliary/Build/14.20/Microsoft.VCToolsVersion.14.20.props"}
	p := NewSolutionGen("app", tc, nil).project(utilityTarget{name: "app"})

	var found bool
	for _, imp := range p.Imports {
		if strings.Contains(imp.Project, "Microsoft.VCToolsVersion.14.20.props") {
			found = true
		}
	}
	assert.True(t, found)

	plain := NewSolutionGen("app", fakeToolchain{platform: "x64", toolset: "v142"}, nil).project(utilityTarget{name: "app"})
	assert.Len(t, plain.Imports, 3)
}
