package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var Languages x.SubCommand

func init() {
	Languages.Cmd = &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages and their stemmer backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLanguages(cmd.OutOrStdout())
		},
	}
	Languages.EnvPrefix = "WORDSTEM_LANGUAGES"

	register(&Languages)
}

func printLanguages(out io.Writer) error {
	for _, l := range engine.Languages() {
		if _, err := fmt.Fprintf(out, "%-4s %-12s %s\n", l.Code, l.Name, l.Backend); err != nil {
			return err
		}
	}
	return nil
}
