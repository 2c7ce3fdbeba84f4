package gen

import (
	"encoding/xml"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Windows (Visual C++) https://github.com/VISTALL/visual-studio-project-type-guids
const vcProjectTypeGUID = "8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942"

var defaultConfigurations = []string{"Debug", "Release"}

type utilityTarget struct {
	name     string
	commands []string
}

// SolutionGen emits a .sln with one utility .vcxproj per target.
type SolutionGen struct {
	name           string
	tc             Toolchain
	configurations []string
	targets        map[string]utilityTarget
}

func NewSolutionGen(name string, tc Toolchain, configurations []string) *SolutionGen {
	if len(configurations) == 0 {
		configurations = defaultConfigurations
	}
	return &SolutionGen{
		name:           name,
		tc:             tc,
		configurations: configurations,
		targets:        make(map[string]utilityTarget),
	}
}

func (g *SolutionGen) AddTarget(name string, commands []string) {
	g.targets[name] = utilityTarget{name: name, commands: commands}
}

func (g *SolutionGen) BuildFile() string {
	return g.name + ".sln"
}

// projectGUID derives a stable GUID so regenerating does not churn the files.
func (g *SolutionGen) projectGUID(name string) string {
	return strings.ToUpper(uuid.NewSHA1(uuid.NameSpaceOID, []byte(g.name+"/"+name)).String())
}

func (g *SolutionGen) targetNames() []string {
	names := make([]string, 0, len(g.targets))
	for name := range g.targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generate writes the solution and its projects into buildDir and returns
// the solution path.
func (g *SolutionGen) Generate(buildDir string) (string, error) {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return "", err
	}

	for _, name := range g.targetNames() {
		projectDir := filepath.Join(buildDir, name)
		if err := os.MkdirAll(projectDir, 0o755); err != nil {
			return "", err
		}
		if err := g.generateProjectFile(projectDir, g.targets[name]); err != nil {
			return "", errors.Wrapf(err, "failed to write project %q", name)
		}
	}

	sln, err := g.generateSolutionFile()
	if err != nil {
		return "", err
	}
	slnPath := filepath.Join(buildDir, g.BuildFile())
	if err := os.WriteFile(slnPath, []byte(sln), 0o644); err != nil {
		return "", err
	}
	return slnPath, nil
}

func (g *SolutionGen) generateSolutionFile() (string, error) {
	var sb strings.Builder
	if err := g.tc.WriteSLNHeader(&sb); err != nil {
		return "", err
	}

	names := g.targetNames()
	platform := g.tc.PlatformName()
	for _, name := range names {
		writeln(&sb,
			`Project("{`, vcProjectTypeGUID, `}") = "`, name, `", "`, name, `\`, name, `.vcxproj", "{`, g.projectGUID(name), `}"`,
		)
		writeln(&sb, "EndProject")
	}
	writeln(&sb, "Global")
	writeln(&sb, "\tGlobalSection(SolutionConfigurationPlatforms) = preSolution")
	for _, cfg := range g.configurations {
		writeln(&sb, "\t\t", cfg, "|", platform, " = ", cfg, "|", platform)
	}
	writeln(&sb, "\tEndGlobalSection")
	writeln(&sb, "\tGlobalSection(ProjectConfigurationPlatforms) = postSolution")
	for _, name := range names {
		guid := g.projectGUID(name)
		for _, cfg := range g.configurations {
			writeln(&sb, "\t\t{", guid, "}.", cfg, "|", platform, ".ActiveCfg = ", cfg, "|", platform)
			writeln(&sb, "\t\t{", guid, "}.", cfg, "|", platform, ".Build.0 = ", cfg, "|", platform)
		}
	}
	writeln(&sb, "\tEndGlobalSection")
	writeln(&sb, "\tGlobalSection(SolutionProperties) = preSolution")
	writeln(&sb, "\t\tHideSolutionNode = FALSE")
	writeln(&sb, "\tEndGlobalSection")
	writeln(&sb, "\tGlobalSection(ExtensibilityGlobals) = postSolution")
	writeln(&sb, "\t\tSolutionGuid = {", g.projectGUID(""), "}")
	writeln(&sb, "\tEndGlobalSection")
	writeln(&sb, "EndGlobal")

	return sb.String(), nil
}

func (g *SolutionGen) condition(cfg string) string {
	return "'$(Configuration)|$(Platform)'=='" + cfg + "|" + g.tc.PlatformName() + "'"
}

// project builds the utility project for target.
func (g *SolutionGen) project(target utilityTarget) VSProject {
	platform := g.tc.PlatformName()

	configs := make([]VSProjectConfiguration, 0, len(g.configurations))
	for _, cfg := range g.configurations {
		configs = append(configs, VSProjectConfiguration{Include: cfg + "|" + platform, Configuration: cfg, Platform: platform})
	}

	globals := VSPropertyGroup{
		Label:                        "Globals",
		ProjectGuid:                  "{" + g.projectGUID(target.name) + "}",
		Keyword:                      "Win32Proj",
		WindowsTargetPlatformVersion: g.tc.WindowsTargetPlatformVersion(),
		ProjectName:                  target.name,
	}
	if android := g.tc.Android(); android.IsAndroidTarget {
		globals.Keyword = "Android"
		globals.ApplicationType = "Android"
		globals.ApplicationTypeRevision = android.WorkflowVersion
		globals.AndroidAPILevel = "android-" + android.APILevel
	}

	propertyGroups := []VSPropertyGroup{globals}
	if arch := g.tc.ToolsetHostArchitecture(); arch != "" {
		propertyGroups = append(propertyGroups, VSPropertyGroup{PreferredToolArchitecture: arch})
	}
	for _, cfg := range g.configurations {
		propertyGroups = append(propertyGroups, VSPropertyGroup{
			Condition:         g.condition(cfg),
			Label:             "Configuration",
			ConfigurationType: "Utility",
			PlatformToolset:   g.tc.PlatformToolset(),
		}, VSPropertyGroup{
			Condition: g.condition(cfg),
			OutDir:    `$(SolutionDir)` + cfg + `\`,
			IntDir:    target.name + `\int\` + cfg + `\`,
		})
	}

	imports := []VSImport{{Project: `$(VCTargetsPath)\Microsoft.Cpp.Default.props`}}
	if props := g.tc.AuxiliaryToolset(g.tc.ToolsetVersion()); props != "" {
		imports = append(imports, VSImport{Project: filepath.FromSlash(props), Condition: "exists('" + filepath.FromSlash(props) + "')"})
	}
	imports = append(imports, VSImport{Project: `$(VCTargetsPath)\Microsoft.Cpp.props`})

	var defs []VSItemDefinitionGroup
	if len(target.commands) > 0 {
		for _, cfg := range g.configurations {
			defs = append(defs, VSItemDefinitionGroup{
				Condition: g.condition(cfg),
				PostBuildEvent: &VSPostBuildEvent{
					Message: "Running " + target.name,
					Command: strings.Join(target.commands, "\r\n"),
				},
			})
		}
	}

	return VSProject{
		DefaultTargets:       "Build",
		ToolsVersion:         "15.0",
		XMLNS:                "http://schemas.microsoft.com/developer/msbuild/2003",
		ItemGroups:           []VSItemGroup{{Label: "ProjectConfigurations", ProjectConfigurations: configs}},
		PropertyGroups:       propertyGroups,
		Imports:              append(imports, VSImport{Project: `$(VCTargetsPath)\Microsoft.Cpp.targets`}),
		ImportGroups:         []VSImportGroup{{Label: "ExtensionTargets"}},
		ItemDefinitionGroups: defs,
	}
}

func (g *SolutionGen) generateProjectFile(projectDir string, target utilityTarget) error {
	output, err := xml.MarshalIndent(g.project(target), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectDir, target.name+".vcxproj"), []byte(xml.Header+string(output)), 0o644)
}

// Invoke builds the solution with MSBuild, or with devenv when asked.
func (g *SolutionGen) Invoke(buildDir, configuration string, devenv bool) error {
	if configuration == "" {
		configuration = g.configurations[0]
	}

	var cmd *exec.Cmd
	if devenv {
		cmd = exec.Command(g.tc.FindDevEnvCommand(), g.BuildFile(), "/build", configuration+"|"+g.tc.PlatformName())
	} else {
		cmd = exec.Command(g.tc.FindMSBuildCommand(), g.BuildFile(),
			"/p:Configuration="+configuration,
			"/p:Platform="+g.tc.PlatformName(),
		)
	}
	cmd.Dir = buildDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
