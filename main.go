package main

import "github.com/pigeonnation/xbuild/cmd"

func main() {
	cmd.Execute()
}
