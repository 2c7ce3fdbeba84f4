// vsgen build [path]
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagConfiguration string
	flagDevEnv        bool
)

func doBuild(cmd *cobra.Command, args []string) {
	if err := newBuilder(args).Build(flagConfiguration, flagDevEnv); err != nil {
		fail(err)
	}
}

var buildCmd = &cobra.Command{
	Use:   "build [target path]",
	Short: "Configure and build the solution",
	Long:  `Configure, then build the solution with MSBuild (or devenv with --devenv). If no target path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doBuild,
}

func init() {
	// vsgen build subcommand
	rootCmd.AddCommand(buildCmd)
	addConfigureFlags(buildCmd)
	buildCmd.Flags().StringVarP(&flagConfiguration, "config", "c", "", "Configuration to build (default: the first configured one)")
	buildCmd.Flags().BoolVar(&flagDevEnv, "devenv", false, "Build with devenv.com instead of MSBuild")
}
