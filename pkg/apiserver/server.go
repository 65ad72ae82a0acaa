package apiserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/x"
)

const RequestIDHeader = "X-Request-Id"

// Backend answers stem requests. tcpclient.TCPClient and grpcserver.Client
// both implement it.
type Backend interface {
	Stem(ctx context.Context, language string, words []string) (*engine.StemResults, error)
	Analyze(ctx context.Context, language string, text string) (*engine.StemResults, error)
	Languages(ctx context.Context) (*engine.LanguagesResults, error)
}

// StemParams is the body of POST /api/stem. With Pipeline set the words run
// through the full indexing pipeline and the answer carries terms instead of
// word/stem pairs.
type StemParams struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
	Pipeline bool     `json:"pipeline"`
}

type Server struct {
	Backend Backend
	Logger  *zap.Logger
	Timeout time.Duration
}

func NewServer(backend Backend, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Backend: backend, Logger: logger, Timeout: 30 * time.Second}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.requestID)
	router.HandleFunc("/api/stem", MakeGzipHandler(s.HandleStem)).Methods(http.MethodPost)
	router.HandleFunc("/api/languages", MakeGzipHandler(s.HandleLanguages)).Methods(http.MethodGet)
	router.Handle("/metrics", x.MetricsHandler()).Methods(http.MethodGet)
	return router
}

type gzipResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func MakeGzipHandler(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accepts := r.Header.Get("Accept-Encoding")
		if !strings.Contains(accepts, "gzip") {
			fn(w, r)
			return
		}
		gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			fn(w, r)
			return
		}
		defer func(gz *gzip.Writer) {
			x.Ignore(gz.Close())
		}(gz)
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		fn(gzipResponseWriter{
			Writer:         gz,
			ResponseWriter: w,
		}, r)
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		t0 := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Debug("http request",
			zap.String("id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(t0)))
	})
}

func (s *Server) context(r *http.Request) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(r.Context(), s.Timeout)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, code int) {
	x.RequestErrors.WithLabelValues("http").Inc()
	s.Logger.Warn("request failed",
		zap.String("id", r.Header.Get(RequestIDHeader)),
		zap.Error(err))
	http.Error(w, err.Error(), code)
}

func (s *Server) HandleStem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	t0 := time.Now()

	var params StemParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.fail(w, r, err, http.StatusBadRequest)
		return
	}

	ctx, cancel := s.context(r)
	defer cancel()

	var (
		results *engine.StemResults
		err     error
	)
	if params.Pipeline {
		results, err = s.Backend.Analyze(ctx, params.Language, strings.Join(params.Words, " "))
	} else {
		results, err = s.Backend.Stem(ctx, params.Language, params.Words)
	}
	if err != nil {
		s.fail(w, r, err, http.StatusBadRequest)
		return
	}
	x.StemLatency.WithLabelValues("http").Observe(time.Since(t0).Seconds())
	if err := json.NewEncoder(w).Encode(results); err != nil {
		s.fail(w, r, err, http.StatusInternalServerError)
	}
}

func (s *Server) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := s.context(r)
	defer cancel()

	results, err := s.Backend.Languages(ctx)
	if err != nil {
		s.fail(w, r, err, http.StatusBadGateway)
		return
	}
	if err := json.NewEncoder(w).Encode(results); err != nil {
		s.fail(w, r, err, http.StatusInternalServerError)
	}
}
