package main

import "layerstack/internal/cli"

func main() {
	cli.Execute()
}
