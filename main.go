package main

import "github.com/leadgrid/enricher/cmd"

func main() {
	cmd.Execute()
}
