package main

import (
	"os"

	"github.com/Luisr26/ExpertSoft/app/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
