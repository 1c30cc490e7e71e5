// Package main is the entry point of the mender CLI.
package main

import "github.com/mouse-blink/mender/cmd"

func main() {
	cmd.Execute()
}
