package main

import (
	"github.com/xkmsoft/wordstem/pkg/cli"
)

func main() {
	cli.Execute()
}
