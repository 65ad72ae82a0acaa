package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/vectors"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var Verify x.SubCommand

func init() {
	Verify.Cmd = &cobra.Command{
		Use:   "verify <file>...",
		Short: "Check a stemmer against reference vectors",
		Long: `Verify stems every word of the given vector files and reports the words whose
stem differs from the reference. Files are "word stem" text or
<vector><word/><stem/></vector> XML, optionally gzip-compressed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.OutOrStdout(), Verify.GetStringP("lang", "l", "pt"), Verify.Conf.GetInt("show"), args)
		},
	}
	Verify.EnvPrefix = "WORDSTEM_VERIFY"

	flag := Verify.Cmd.Flags()
	flag.StringP("lang", "l", "pt", "Language code or name.")
	flag.Int("show", 20, "Print at most this many mismatches per file.")

	register(&Verify)
}

func runVerify(out io.Writer, language string, show int, files []string) error {
	s, err := engine.NewStemmer(language)
	if err != nil {
		return err
	}
	failed := 0
	for _, path := range files {
		vs, err := vectors.Open(path)
		if err != nil {
			return err
		}
		mismatches := vectors.Verify(vs, s.StemWord)
		fmt.Fprintf(out, "%s: %d vectors, %d mismatches\n", path, len(vs), len(mismatches))
		for i, m := range mismatches {
			if i == show {
				fmt.Fprintf(out, "  ... %d more\n", len(mismatches)-show)
				break
			}
			fmt.Fprintf(out, "  %s: want %s, got %s\n", m.Word, m.Stem, m.Got)
		}
		failed += len(mismatches)
	}
	if failed > 0 {
		return errors.Errorf("%d mismatches", failed)
	}
	return nil
}
