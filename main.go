package main

import "github.com/ingo-eichhorst/tokmd/cmd"

func main() {
	cmd.Execute()
}
