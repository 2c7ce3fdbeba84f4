// vsgen generators, vsgen instances
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/qobs-build/vsgen/internal/msg"
	"github.com/qobs-build/vsgen/internal/vs"
)

var generatorsCmd = &cobra.Command{
	Use:   "generators",
	Short: "List the supported generators",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range vs.Generators() {
			fmt.Printf("  %-36s = %s\n", info.Name, info.Brief)
		}
	},
}

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List installed Visual Studio instances",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		instances, err := vs.SetupEnumerator{}.Instances()
		if err != nil {
			fail(err)
		}
		if len(instances) == 0 {
			msg.Warn("no Visual Studio instances found")
			return
		}

		generators := make(map[int]string)
		for _, name := range vs.GeneratorNames() {
			if id, ok := vs.Parse(name); ok {
				generators[id.Version().Major()] = name
			}
		}

		for _, inst := range instances {
			state := color.HiGreenString("complete")
			if !inst.Complete {
				state = color.YellowString("incomplete")
			}
			fmt.Printf("%s %s (%s)\n", color.HiCyanString(inst.Path), inst.Version, state)
			if g, ok := generators[inst.Major()]; ok {
				fmt.Printf("  generator: %s\n", g)
			}
			fmt.Printf("  id: %s\n", inst.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(generatorsCmd)
	rootCmd.AddCommand(instancesCmd)
}
