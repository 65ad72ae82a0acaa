package main

import (
	"os"

	"github.com/xkmsoft/wordstem/pkg/cli"
)

// api is a shorthand for "wordstem api".
func main() {
	cli.RootCmd.SetArgs(append([]string{"api"}, os.Args[1:]...))
	cli.Execute()
}
