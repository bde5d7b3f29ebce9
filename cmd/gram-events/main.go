package main

import "github.com/pfrederiksen/gram-events/internal/cli"

func main() {
	cli.Execute()
}
