// vsgen init [path]
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/qobs-build/vsgen/internal/builder"
	"github.com/qobs-build/vsgen/internal/msg"
)

func writefile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Fatal("create file %s: %v", path, err)
		}
		fmt.Printf("%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	} else {
		msg.Warn("%s already exists, leaving it alone", filepath.ToSlash(path))
	}
}

func mkdir(elem ...string) {
	path := filepath.Join(elem...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		msg.Fatal("mkdir %s: %v", path, err)
	}
}

func getProgramName() string {
	if len(os.Args) == 0 {
		return "vsgen"
	}
	basename := filepath.Base(os.Args[0])
	return strings.TrimSuffix(basename, filepath.Ext(basename))
}

// initIn writes a starter vsgen.toml into an existing directory
func initIn(dir, name, generator string) {
	writefile(`[project]
name = "`+name+`"
configurations = ["Debug", "Release"]
build-dir = "build"

[generator]
name = "`+generator+`"
# instance = "C:/Program Files (x86)/Microsoft Visual Studio/2019/Community"
# toolset = "v142,host=x64"

[generator.'host_arch == "arm64"']
platform = "ARM64"

[system]
# name = "WindowsStore"
# version = "10.0.17763.0"

[android]
api-level = 26

[targets."`+name+`"]
commands = ["echo Building `+name+`"]
`, dir, builder.ConfigFile)

	writefile(`build/
`, dir, ".gitignore")

	programName := getProgramName()
	fmt.Printf("You can now do %s to generate the solution, or %s to build it.\n",
		color.HiCyanString(programName+" "+dir), color.HiCyanString(programName+" build "+dir))
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter " + builder.ConfigFile,
	Long:  `Write a starter ` + builder.ConfigFile + `. If no path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
			mkdir(dir)
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			msg.Fatal("%v", err)
		}
		generator := flagGenerator
		if generator == "" {
			generator = "Visual Studio 16 2019"
		}
		initIn(dir, filepath.Base(abs), generator)
	},
}

func init() {
	// vsgen init subcommand
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&flagGenerator, "generator", "G", "", "Generator to write into the file")
}
