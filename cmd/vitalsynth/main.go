package main

import "github.com/vitalsynth/vitalsynth/internal/cli"

func main() {
	cli.Execute()
}
