package grpcserver

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/x"
)

type Server struct {
	Logger   *zap.Logger
	Registry *engine.Registry
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Logger: logger, Registry: engine.NewRegistry()}
}

func (s *Server) Stem(_ context.Context, req *StemRequest) (*engine.StemResults, error) {
	t0 := time.Now()
	p, err := s.Registry.Pipeline(req.Language)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	results := &engine.StemResults{Language: p.Language}
	if req.Pipeline {
		results.Terms = p.Analyze(strings.Join(req.Words, " "))
		x.WordsStemmed.WithLabelValues(p.Language.Code, "grpc").Add(float64(len(results.Terms)))
	} else {
		results.Stems = make([]engine.WordStem, 0, len(req.Words))
		for _, w := range req.Words {
			results.Stems = append(results.Stems, engine.WordStem{Word: w, Stem: p.Stemmer.StemWord(w)})
		}
		x.WordsStemmed.WithLabelValues(p.Language.Code, "grpc").Add(float64(len(results.Stems)))
	}
	results.Processed = engine.ProcessedSince(t0)
	return results, nil
}

func (s *Server) Languages(context.Context, *LanguagesRequest) (*engine.LanguagesResults, error) {
	return &engine.LanguagesResults{Languages: engine.Languages()}, nil
}

func (s *Server) intercept(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	t0 := time.Now()
	resp, err := handler(ctx, req)
	x.StemLatency.WithLabelValues("grpc").Observe(time.Since(t0).Seconds())
	if err != nil {
		x.RequestErrors.WithLabelValues("grpc").Inc()
		s.Logger.Warn("rpc failed", zap.String("method", info.FullMethod), zap.Error(err))
	} else {
		s.Logger.Debug("rpc", zap.String("method", info.FullMethod), zap.Duration("took", time.Since(t0)))
	}
	return resp, err
}

// GRPCServer builds a grpc.Server with the Stemmer service registered.
func (s *Server) GRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.UnaryInterceptor(s.intercept))
	gs := grpc.NewServer(opts...)
	RegisterStemmerServer(gs, s)
	return gs
}

// Serve serves listener until ctx is done, then stops gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	gs := s.GRPCServer()
	go func() {
		<-ctx.Done()
		gs.GracefulStop()
	}()
	s.Logger.Info("grpc listening", zap.String("address", listener.Addr().String()))
	if err := gs.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "serving grpc")
	}
	return nil
}
