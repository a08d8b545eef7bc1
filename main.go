package main

import "github.com/mbrett/platen/cmd"

func main() {
	cmd.Execute()
}
