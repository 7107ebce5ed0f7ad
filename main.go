package main

import (
	"os"

	"github.com/00imvj00/mqttrs/cli"
)

func main() {
	os.Exit(cli.Dump(os.Args, os.Stdout, os.Stderr))
}
