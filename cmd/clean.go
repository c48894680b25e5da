// xbuild clean [path]
package cmd

import (
	"github.com/pigeonnation/xbuild/internal/builder"
	"github.com/pigeonnation/xbuild/internal/msg"
	"github.com/spf13/cobra"
)

func doClean(cmd *cobra.Command, args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	b, err := builder.NewBuilderInDirectory(target)
	if err != nil {
		msg.Fatal("%v", err)
	}
	if err := b.Clean(); err != nil {
		msg.Fatal("%v", err)
	}
}

var cleanCmd = &cobra.Command{
	Use:   "clean [project path]",
	Short: "Remove all build artifacts",
	Long:  `Remove the whole build directory tree. If no project path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doClean,
}

func init() {
	// xbuild clean subcommand
	rootCmd.AddCommand(cleanCmd)
}
