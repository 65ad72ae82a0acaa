package apiserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/xkmsoft/wordstem/pkg/engine"
)

// localBackend answers from in-process pipelines.
type localBackend struct{}

func (localBackend) Stem(_ context.Context, language string, words []string) (*engine.StemResults, error) {
	p, err := engine.NewPipeline(language)
	if err != nil {
		return nil, err
	}
	res := &engine.StemResults{Language: p.Language}
	for _, w := range words {
		res.Stems = append(res.Stems, engine.WordStem{Word: w, Stem: p.Stemmer.StemWord(w)})
	}
	return res, nil
}

func (localBackend) Analyze(_ context.Context, language string, text string) (*engine.StemResults, error) {
	p, err := engine.NewPipeline(language)
	if err != nil {
		return nil, err
	}
	return &engine.StemResults{Language: p.Language, Terms: p.Analyze(text)}, nil
}

func (localBackend) Languages(context.Context) (*engine.LanguagesResults, error) {
	return &engine.LanguagesResults{Languages: engine.Languages()}, nil
}

type downBackend struct{ localBackend }

func (downBackend) Languages(context.Context) (*engine.LanguagesResults, error) {
	return nil, errors.New("engine down")
}

func TestHandleStem(t *testing.T) {
	router := NewServer(localBackend{}, nil).Router()

	body := `{"language":"pt","words":["casas","felizmente"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/stem", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	var res engine.StemResults
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, []engine.WordStem{
		{Word: "casas", Stem: "cas"},
		{Word: "felizmente", Stem: "feliz"},
	}, res.Stems)
}

func TestHandleStemPipeline(t *testing.T) {
	router := NewServer(localBackend{}, nil).Router()

	body := `{"language":"hu","words":["A","házakat","és","a","kutyával."],"pipeline":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/stem", strings.NewReader(body))
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	var res engine.StemResults
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, []string{"ház", "kuty"}, res.Terms)
}

func TestHandleStemErrors(t *testing.T) {
	router := NewServer(localBackend{}, nil).Router()

	for _, body := range []string{`{`, `{"language":"klingon","words":["x"]}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/stem", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stem", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleLanguagesGzip(t *testing.T) {
	router := NewServer(localBackend{}, nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)

	var res engine.LanguagesResults
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, engine.Languages(), res.Languages)
}

func TestHandleLanguagesDown(t *testing.T) {
	router := NewServer(downBackend{}, nil).Router()
	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMetrics(t *testing.T) {
	router := NewServer(localBackend{}, nil).Router()
	req := httptest.NewRequest(http.MethodPost, "/api/stem", strings.NewReader(`{`))
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "wordstem_request_errors_total")
}
