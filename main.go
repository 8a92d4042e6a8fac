package main

import "github.com/luthersystems/lispy/cmd"

func main() {
	cmd.Execute()
}
