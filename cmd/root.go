// vsgen [path], vsgen configure [path]
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qobs-build/vsgen/internal/builder"
	"github.com/qobs-build/vsgen/internal/msg"
	"github.com/qobs-build/vsgen/internal/vs"
)

var (
	flagGenerator       string
	flagPlatform        string
	flagToolset         string
	flagInstance        string
	flagSystemVersion   string
	flagAndroidAPILevel string
	flagSystemName      EnumValue = NewEnumValue("", map[string]string{
		"":                    "Target the host (default)",
		vs.SystemWindows:      "Target desktop Windows",
		vs.SystemWindowsStore: "Target the Universal Windows Platform",
		vs.SystemAndroid:      "Target Android through the VS Android workflow",
	})
)

// console is shared so fatal diagnostics already printed by the generator
// are not repeated.
var console = &msg.Console{}

func overrides() builder.Overrides {
	return builder.Overrides{
		Generator:       flagGenerator,
		Instance:        flagInstance,
		Platform:        flagPlatform,
		Toolset:         flagToolset,
		SystemName:      flagSystemName.Value(),
		SystemVersion:   flagSystemVersion,
		AndroidAPILevel: flagAndroidAPILevel,
	}
}

func newBuilder(args []string) *builder.Builder {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	b, err := builder.NewBuilderInDirectory(target, overrides(), vs.Options{Issuer: console})
	if err != nil {
		fail(err)
	}
	return b
}

func doConfigure(cmd *cobra.Command, args []string) {
	if err := newBuilder(args).Configure(); err != nil {
		fail(err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vsgen [target path]",
	Short: "Visual Studio solution generator",
	Long:  `Resolves a Visual Studio instance, toolset, platform and Windows SDK, and writes a solution for them.`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doConfigure,
}

var configureCmd = &cobra.Command{
	Use:   "configure [target path]",
	Short: "Resolve generator state and write the solution",
	Long:  `Resolve generator state and write the solution. If no target path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doConfigure,
}

func init() {
	addConfigureFlags(rootCmd)

	// vsgen configure subcommand
	rootCmd.AddCommand(configureCmd)
	addConfigureFlags(configureCmd)
}

func addConfigureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagGenerator, "generator", "G", "", "Generator name, e.g. \"Visual Studio 16 2019\"")
	cmd.Flags().StringVarP(&flagPlatform, "platform", "A", "", "Solution platform, e.g. x64 or ARM64")
	cmd.Flags().StringVarP(&flagToolset, "toolset", "T", "", "Toolset specification: <name>[,host=<arch>][,version=<ver>]")
	cmd.Flags().StringVar(&flagInstance, "instance", "", "Install path of the Visual Studio instance to use")
	cmd.Flags().Var(&flagSystemName, "system-name", "Target system, one of "+flagSystemName.HelpString())
	cmd.Flags().StringVar(&flagSystemVersion, "system-version", "", "Target system version, e.g. 10.0.17763.0")
	cmd.Flags().StringVar(&flagAndroidAPILevel, "android-api-level", "", "Android API level projects target")
	cmd.RegisterFlagCompletionFunc("system-name", flagSystemName.CompletionFunc())
	cmd.RegisterFlagCompletionFunc("generator", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append(vs.GeneratorNames(), vs.GeneratorNamesWithPlatform()...), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return vs.KnownPlatforms(), cobra.ShellCompDirectiveNoFileComp
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
