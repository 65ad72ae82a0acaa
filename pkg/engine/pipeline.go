package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type PipelineInterface interface {
	Analyze(s string) []string
	AnalyzeWords(words []string) []string
	SearchTerms(words []string) []string
}

// Pipeline runs the indexing sequence of one language:
// tokenize, trim, normalize, lowercase, drop stop words, stem.
type Pipeline struct {
	Language   Language
	Tokenizer  *Tokenizer
	Trimmer    *Trimmer
	Filterer   *Filterer
	Stemmer    *Stemmer
	Cores      int
	Multiplier int
}

func NewPipeline(code string) (*Pipeline, error) {
	stemmer, err := NewStemmer(code)
	if err != nil {
		return nil, err
	}
	filterer, err := NewFilterer(stemmer.Language.Code)
	if err != nil {
		return nil, err
	}
	trimmer, err := NewTrimmerFor(stemmer.Language)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Language:   stemmer.Language,
		Tokenizer:  NewTokenizer(),
		Trimmer:    trimmer,
		Filterer:   filterer,
		Stemmer:    stemmer,
		Cores:      runtime.NumCPU(),
		Multiplier: 2,
	}, nil
}

func (p *Pipeline) Analyze(s string) []string {
	return p.AnalyzeWords(p.Tokenizer.Tokenize(s))
}

// AnalyzeWords runs the sequence on words that are already split. The
// input slice is not modified.
func (p *Pipeline) AnalyzeWords(words []string) []string {
	tokens := p.Trimmer.Trim(words)
	tokens = p.Filterer.Normalize(tokens)
	tokens = p.Filterer.Lowercase(tokens)
	tokens = p.Filterer.RemoveStopWords(tokens)
	tokens = p.Stemmer.Stem(tokens)
	return tokens
}

// SearchTerms stems query words as they are. Queries only go through the
// stemmer so that they match the indexed stems.
func (p *Pipeline) SearchTerms(words []string) []string {
	return p.Stemmer.Stem(words)
}

// StemConcurrently stems words on Cores*Multiplier goroutines. The result
// has one stem per word, in input order.
func (p *Pipeline) StemConcurrently(ctx context.Context, words []string) ([]string, error) {
	return StemConcurrently(ctx, p.Stemmer, words, p.Cores*p.Multiplier)
}

// StemConcurrently splits words into chunks, one per worker, and stems them
// in parallel. It stops early when ctx is cancelled.
func StemConcurrently(ctx context.Context, s StemmerInterface, words []string, workers int) ([]string, error) {
	stems := make([]string, len(words))
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range Chunks(len(words), workers) {
		c := c
		g.Go(func() error {
			for idx := c.Low; idx < c.High; idx++ {
				if idx%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				stems[idx] = s.StemWord(words[idx])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stems, nil
}
