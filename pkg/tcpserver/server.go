package tcpserver

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/x"
)

type ServerInterface interface {
	Address() string
	Signature() string
	HandleRequest(connection net.Conn)
	HandleResponse(response string, connection net.Conn)
	AcceptConnections(ctx context.Context, listener net.Listener) error
	ListenAndServe(ctx context.Context) error
}

type Options struct {
	Host    string
	Port    string
	Network string
	// CacheSize is the stem cache budget in bytes; 0 disables the cache.
	CacheSize int64
	// Timeout bounds reading a request and writing its response.
	Timeout time.Duration
}

type Server struct {
	Options
	Logger *zap.Logger
	Cache  *ristretto.Cache[string, string]

	Registry *engine.Registry

	wg sync.WaitGroup
}

func NewServer(opts Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		Options:  opts,
		Logger:   logger,
		Registry: engine.NewRegistry(),
	}
	s.Registry.OnRegister = func(lang engine.Language) {
		logger.Info("registered language", zap.String("code", lang.Code), zap.String("backend", lang.Backend))
	}
	if opts.CacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
			NumCounters: opts.CacheSize / 8,
			MaxCost:     opts.CacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, errors.Wrap(err, "creating stem cache")
		}
		s.Cache = cache
	}
	return s, nil
}

func (s *Server) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

func (s *Server) Signature() string {
	return fmt.Sprintf("%s %s", s.Network, s.Address())
}

// Pipeline returns the pipeline of a language, registering it on first use.
func (s *Server) Pipeline(code string) (*engine.Pipeline, error) {
	return s.Registry.Pipeline(code)
}

// Stem stems words with the stem cache in front of the stemmer.
func (s *Server) Stem(p *engine.Pipeline, words []string) []engine.WordStem {
	stems := make([]engine.WordStem, 0, len(words))
	for _, w := range words {
		stems = append(stems, engine.WordStem{Word: w, Stem: s.stemWord(p, w)})
	}
	return stems
}

func (s *Server) stemWord(p *engine.Pipeline, word string) string {
	if s.Cache == nil {
		return p.Stemmer.StemWord(word)
	}
	key := p.Language.Code + "\x00" + word
	if stem, ok := s.Cache.Get(key); ok {
		x.CacheLookups.WithLabelValues("hit").Inc()
		return stem
	}
	x.CacheLookups.WithLabelValues("miss").Inc()
	stem := p.Stemmer.StemWord(word)
	s.Cache.Set(key, stem, int64(len(key)+len(stem)))
	return stem
}

// Process answers one decoded request.
func (s *Server) Process(req *Request) interface{} {
	t0 := time.Now()
	defer func() {
		x.StemLatency.WithLabelValues("tcp").Observe(time.Since(t0).Seconds())
	}()

	if req.Command == LANGUAGES {
		return engine.LanguagesResults{Languages: engine.Languages()}
	}

	p, err := s.Pipeline(req.Language)
	if err != nil {
		x.RequestErrors.WithLabelValues("tcp").Inc()
		return engine.StemResults{Error: err.Error()}
	}
	results := engine.StemResults{Language: p.Language}
	switch req.Command {
	case STEM:
		results.Stems = s.Stem(p, req.Words())
		x.WordsStemmed.WithLabelValues(p.Language.Code, "tcp").Add(float64(len(results.Stems)))
	case ANALYZE:
		results.Terms = p.Analyze(string(req.Payload))
		x.WordsStemmed.WithLabelValues(p.Language.Code, "tcp").Add(float64(len(results.Terms)))
	}
	results.Processed = engine.ProcessedSince(t0)
	return results
}

func (s *Server) HandleRequest(connection net.Conn) {
	if s.Timeout > 0 {
		x.Ignore(connection.SetDeadline(time.Now().Add(s.Timeout)))
	}
	req, err := ReadRequest(connection)
	if err != nil {
		x.RequestErrors.WithLabelValues("tcp").Inc()
		s.Logger.Warn("bad request", zap.String("remote", connection.RemoteAddr().String()), zap.Error(err))
		s.HandleResponse(ResponseJSON(engine.StemResults{Error: err.Error()}), connection)
		return
	}

	s.Logger.Debug("request",
		zap.Uint8("command", req.Command),
		zap.String("language", req.Language),
		zap.Int("payload", len(req.Payload)))

	s.HandleResponse(ResponseJSON(s.Process(req)), connection)
}

// ResponseJSON encodes a response body. A value that cannot be encoded is
// answered with an error object instead.
func ResponseJSON(v interface{}) string {
	str, err := ToJSONString(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return str
}

func (s *Server) HandleResponse(response string, connection net.Conn) {
	defer func(c net.Conn) {
		if err := c.Close(); err != nil {
			s.Logger.Debug("closing connection", zap.Error(err))
		}
	}(connection)

	if _, err := connection.Write([]byte(response + "\n")); err != nil {
		s.Logger.Warn("writing response", zap.Error(err))
	}
}

// AcceptConnections serves listener until ctx is done, then waits for the
// requests in flight.
func (s *Server) AcceptConnections(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		x.Ignore(listener.Close())
	}()

	s.Logger.Info("accepting connections", zap.String("address", listener.Addr().String()))
	defer s.wg.Wait()

	for {
		con, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.Logger.Info("server closed", zap.String("address", listener.Addr().String()))
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				s.Logger.Info("listener closed", zap.String("address", listener.Addr().String()))
				return nil
			}
			s.Logger.Error("accepting connection", zap.Error(err))
			return errors.Wrap(err, "accepting connection")
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.HandleRequest(con)
		}()
	}
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen(s.Network, s.Address())
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.Signature())
	}
	return s.AcceptConnections(ctx, listener)
}

func (s *Server) Close() {
	if s.Cache != nil {
		s.Cache.Close()
	}
}
