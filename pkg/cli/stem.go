package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var Stem x.SubCommand

type stemOptions struct {
	Language string
	Pipeline bool
	JSON     bool
	Workers  int
}

func init() {
	Stem.Cmd = &cobra.Command{
		Use:   "stem [words...]",
		Short: "Stem words given as arguments or read from stdin",
		Long: `Stem prints "word<TAB>stem" for every word. Without arguments the words are
read from stdin, one per line. With --pipeline the input is treated as text and
the indexing terms are printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := stemOptions{
				Language: Stem.GetStringP("lang", "l", "pt"),
				Pipeline: Stem.GetBoolP("pipeline", "", false),
				JSON:     Stem.GetBoolP("json", "", false),
				Workers:  Stem.GetIntP("workers", "", 0),
			}
			words := args
			if len(words) == 0 {
				var err error
				if words, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return runStem(cmd.Context(), cmd.OutOrStdout(), opts, words)
		},
	}
	Stem.EnvPrefix = "WORDSTEM_STEM"

	flag := Stem.Cmd.Flags()
	flag.StringP("lang", "l", "pt", "Language code or name, e.g. hu, pt-BR, portuguese.")
	flag.Bool("pipeline", false, "Run the full indexing pipeline and print terms.")
	flag.Bool("json", false, "Print the result as JSON.")
	flag.Int("workers", 0, "Stem concurrently on this many goroutines, 0 stems sequentially.")

	register(&Stem)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, errors.Wrap(scanner.Err(), "reading stdin")
}

func runStem(ctx context.Context, out io.Writer, opts stemOptions, words []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := engine.NewPipeline(opts.Language)
	if err != nil {
		return err
	}
	results := engine.StemResults{Language: p.Language}

	if opts.Pipeline {
		results.Terms = p.Analyze(strings.Join(words, "\n"))
	} else {
		var stems []string
		if opts.Workers > 0 {
			if stems, err = engine.StemConcurrently(ctx, p.Stemmer, words, opts.Workers); err != nil {
				return err
			}
		} else {
			stems = make([]string, len(words))
			for i, w := range words {
				stems[i] = p.Stemmer.StemWord(w)
			}
		}
		for i, w := range words {
			results.Stems = append(results.Stems, engine.WordStem{Word: w, Stem: stems[i]})
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, t := range results.Terms {
		if _, err := fmt.Fprintln(out, t); err != nil {
			return err
		}
	}
	for _, ws := range results.Stems {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", ws.Word, ws.Stem); err != nil {
			return err
		}
	}
	return nil
}
