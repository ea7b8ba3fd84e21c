package main

import "github.com/awakefm/artist-node/cmd"

func main() {
	cmd.Execute()
}
