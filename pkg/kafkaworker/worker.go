// Package kafkaworker stems word batches read from Kafka.
//
// A batch is a message on the words topic whose value is text (one word per
// line, or free text) and whose "language" header names the language. The
// worker runs the indexing pipeline of that language and writes a Result to
// the stems topic. The chunking headers of the producer are copied through so
// that a collector can reassemble split documents.
package kafkaworker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/x"
)

const (
	HeaderLanguage   = "language"
	HeaderSourceKey  = "source-key"
	HeaderChunkIndex = "chunk-index"
	HeaderChunkTotal = "chunk-total"
)

type Config struct {
	Brokers    []string
	WordsTopic string
	StemsTopic string
	GroupID    string
}

// Result is the value written to the stems topic. A batch that could not be
// stemmed has Error set and no terms.
type Result struct {
	SourceKey  string           `json:"source_key"`
	ChunkIndex int              `json:"chunk_index"`
	ChunkTotal int              `json:"chunk_total"`
	Language   string           `json:"language"`
	Terms      []string         `json:"terms"`
	Processed  engine.Processed `json:"processed"`
	Error      string           `json:"error,omitempty"`
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Worker struct {
	Config   Config
	Logger   *zap.Logger
	Registry *engine.Registry
	// Backoff is the pause after a failed fetch or write.
	Backoff time.Duration
}

func NewWorker(cfg Config, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		Config:   cfg,
		Logger:   logger,
		Registry: engine.NewRegistry(),
		Backoff:  time.Second,
	}
}

func (w *Worker) NewReader() *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  w.Config.Brokers,
		Topic:    w.Config.WordsTopic,
		GroupID:  w.Config.GroupID,
		MinBytes: 1,
		MaxBytes: 5e6,
	})
}

func (w *Worker) NewWriter() *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  w.Config.Brokers,
		Topic:    w.Config.StemsTopic,
		Balancer: &kafka.LeastBytes{},
	})
}

// Process turns one words message into its stems message.
func (w *Worker) Process(msg kafka.Message) (kafka.Message, error) {
	t0 := time.Now()

	var language string
	var srcKey string
	var chunkIndex, chunkTotal int
	for _, h := range msg.Headers {
		switch h.Key {
		case HeaderLanguage:
			language = string(h.Value)
		case HeaderSourceKey:
			srcKey = string(h.Value)
		case HeaderChunkIndex:
			if v, e := strconv.Atoi(string(h.Value)); e == nil {
				chunkIndex = v
			}
		case HeaderChunkTotal:
			if v, e := strconv.Atoi(string(h.Value)); e == nil {
				chunkTotal = v
			}
		}
	}
	if srcKey == "" {
		srcKey = string(msg.Key)
	}
	if srcKey == "" {
		srcKey = uuid.NewString()
	}

	res := Result{
		SourceKey:  srcKey,
		ChunkIndex: chunkIndex,
		ChunkTotal: chunkTotal,
		Language:   language,
		Terms:      []string{},
	}
	if p, err := w.Registry.Pipeline(language); err != nil {
		x.RequestErrors.WithLabelValues("kafka").Inc()
		res.Error = err.Error()
	} else {
		res.Language = p.Language.Code
		res.Terms = p.Analyze(string(msg.Value))
		x.WordsStemmed.WithLabelValues(p.Language.Code, "kafka").Add(float64(len(res.Terms)))
	}
	res.Processed = engine.ProcessedSince(t0)
	x.StemLatency.WithLabelValues("kafka").Observe(time.Since(t0).Seconds())

	payload, err := json.Marshal(res)
	if err != nil {
		return kafka.Message{}, errors.Wrapf(err, "encoding result of chunk %d", chunkIndex)
	}
	return kafka.Message{
		Key:   []byte(srcKey + "-chunk-" + strconv.Itoa(chunkIndex)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: HeaderLanguage, Value: []byte(res.Language)},
			{Key: HeaderSourceKey, Value: []byte(srcKey)},
			{Key: HeaderChunkIndex, Value: []byte(strconv.Itoa(chunkIndex))},
			{Key: HeaderChunkTotal, Value: []byte(strconv.Itoa(chunkTotal))},
		},
	}, nil
}

// Run consumes the words topic until ctx is done. A message is committed
// only after its result has been written.
func (w *Worker) Run(ctx context.Context, reader MessageReader, writer MessageWriter) error {
	w.Logger.Info("waiting for words",
		zap.String("words", w.Config.WordsTopic),
		zap.String("stems", w.Config.StemsTopic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.Logger.Warn("reading words", zap.Error(err))
			if !w.pause(ctx) {
				return nil
			}
			continue
		}

		out, err := w.Process(msg)
		if err != nil {
			w.Logger.Error("processing words", zap.Error(err))
			continue
		}
		for {
			err = writer.WriteMessages(ctx, out)
			if err == nil {
				break
			}
			w.Logger.Warn("writing stems", zap.ByteString("key", out.Key), zap.Error(err))
			if !w.pause(ctx) {
				return nil
			}
		}
		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			w.Logger.Warn("committing", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
		w.Logger.Debug("stems written", zap.ByteString("key", out.Key))
	}
}

func (w *Worker) pause(ctx context.Context) bool {
	t := time.NewTimer(w.Backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
