package engine

import (
	"sync"
)

// Registry hands out one Pipeline per language, building it on first use.
// Lookups are keyed by resolved code, so "pt-BR" and "portuguese" share a
// pipeline. A Registry is safe for concurrent use.
type Registry struct {
	// OnRegister, when set, is called once for every newly built pipeline.
	OnRegister func(Language)

	mu        sync.Mutex
	pipelines map[string]*Pipeline
}

func NewRegistry() *Registry {
	return &Registry{pipelines: map[string]*Pipeline{}}
}

func (r *Registry) Pipeline(code string) (*Pipeline, error) {
	lang, err := LookupLanguage(code)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pipelines[lang.Code]; ok {
		return p, nil
	}
	p, err := NewPipeline(lang.Code)
	if err != nil {
		return nil, err
	}
	r.pipelines[lang.Code] = p
	if r.OnRegister != nil {
		r.OnRegister(lang)
	}
	return p, nil
}

// Registered lists the codes of the pipelines built so far.
func (r *Registry) Registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	codes := make([]string, 0, len(r.pipelines))
	for code := range r.pipelines {
		codes = append(codes, code)
	}
	return codes
}
