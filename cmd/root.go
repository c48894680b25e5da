// xbuild build [path]
package cmd

import (
	"fmt"
	"os"

	"github.com/pigeonnation/xbuild/internal/builder"
	"github.com/pigeonnation/xbuild/internal/msg"
	"github.com/spf13/cobra"
)

func doBuild(cmd *cobra.Command, args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	b, err := builder.NewBuilderInDirectory(target)
	if err != nil {
		msg.Fatal("%v", err)
	}
	if err := b.Build(); err != nil {
		msg.Fatal("%v", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xbuild",
	Short: "Cross-compile a C/C++ project for macOS, Windows and Linux",
	Long: `Cross-compile a C/C++ project from a macOS host: a universal macOS
binary, a Windows x86_64 executable via MinGW-w64 and a Linux x86_64
executable via a cross-gcc, all from the same source tree.`,
}

var buildCmd = &cobra.Command{
	Use:   "build [project path]",
	Short: "Build all three platform executables",
	Long:  `Build all three platform executables. If no project path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doBuild,
}

func init() {
	// xbuild build subcommand
	rootCmd.AddCommand(buildCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
