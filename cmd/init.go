// xbuild init [path]
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pigeonnation/xbuild/internal/msg"
	"github.com/spf13/cobra"
)

func writefile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Fatal("create file %s: %v", path, err)
		}
		fmt.Printf("%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	}
}

func mkdir(elem ...string) {
	path := filepath.Join(elem...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		msg.Fatal("mkdir %s: %v", path, err)
	}
}

// initIn scaffolds a project in dir: a default config, a hello-world source
// tree and a .gitignore for the build directory
func initIn(dir, name string) {
	mkdir(dir, "src")

	// xbuild.toml
	writefile(`[project]
name = "`+name+`"
sources = ["src/**/*.cpp", "src/**/*.c"]

# Toolchain paths and flags can be overridden per target, e.g.:
#
# [toolchain.windows]
# prefix = "{{ environ.HOMEBREW_PREFIX }}/bin/x86_64-w64-mingw32"
`, dir, "xbuild.toml")

	// src/main.c
	writefile(`// You may change this to a .cpp file if you'd like
#include <stdio.h>

int main(void) {
    puts("Hello, World!");
    return 0;
}
`, dir, "src", "main.c")

	// .gitignore
	writefile(`build/
`, dir, ".gitignore")

	fmt.Printf("You can now do %s to cross-compile it.\n", color.HiCyanString("xbuild build "+dir))
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Scaffold a new project",
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
		initIn(dir, filepath.Base(abs))
	},
}

func init() {
	// xbuild init subcommand
	rootCmd.AddCommand(initCmd)
}
