package main

import "github.com/sketchify-dev/sketchify/internal/cli"

func main() {
	cli.Execute()
}
