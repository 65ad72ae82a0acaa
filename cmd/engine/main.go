package main

import (
	"os"

	"github.com/xkmsoft/wordstem/pkg/cli"
)

// engine is a shorthand for "wordstem engine".
func main() {
	cli.RootCmd.SetArgs(append([]string{"engine"}, os.Args[1:]...))
	cli.Execute()
}
