package kafkaworker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcess(t *testing.T) {
	w := NewWorker(Config{}, nil)
	out, err := w.Process(kafka.Message{
		Key:   []byte("doc-1"),
		Value: []byte("As casas e as nações,\nfelizmente!"),
		Headers: []kafka.Header{
			{Key: HeaderLanguage, Value: []byte("pt-BR")},
			{Key: HeaderChunkIndex, Value: []byte("2")},
			{Key: HeaderChunkTotal, Value: []byte("5")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "doc-1-chunk-2", string(out.Key))
	require.Equal(t, "doc-1", header(out, HeaderSourceKey))
	require.Equal(t, "2", header(out, HeaderChunkIndex))
	require.Equal(t, "5", header(out, HeaderChunkTotal))
	require.Equal(t, "pt", header(out, HeaderLanguage))

	var res Result
	require.NoError(t, json.Unmarshal(out.Value, &res))
	require.Empty(t, res.Error)
	require.Equal(t, []string{"cas", "naçõ", "feliz"}, res.Terms)
	require.Equal(t, 2, res.ChunkIndex)
	require.Equal(t, 5, res.ChunkTotal)
}

func TestProcessUnknownLanguage(t *testing.T) {
	w := NewWorker(Config{}, nil)
	out, err := w.Process(kafka.Message{
		Value:   []byte("qapla"),
		Headers: []kafka.Header{{Key: HeaderLanguage, Value: []byte("klingon")}},
	})
	require.NoError(t, err)

	var res Result
	require.NoError(t, json.Unmarshal(out.Value, &res))
	require.NotEmpty(t, res.Error)
	require.Empty(t, res.Terms)
	// A message without a key gets a generated one.
	require.Len(t, res.SourceKey, 36)
	require.Equal(t, res.SourceKey+"-chunk-0", string(out.Key))
}

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []kafka.Message
	failures  int
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return kafka.Message{}, errors.New("broker unavailable")
	}
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakeWriter struct {
	mu       sync.Mutex
	written  []kafka.Message
	failures int
	done     chan struct{}
	want     int
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failures > 0 {
		w.failures--
		return errors.New("leader not available")
	}
	w.written = append(w.written, msgs...)
	if len(w.written) == w.want {
		close(w.done)
	}
	return nil
}

func TestRun(t *testing.T) {
	w := NewWorker(Config{WordsTopic: "words", StemsTopic: "stems"}, nil)
	w.Backoff = time.Millisecond

	reader := &fakeReader{
		failures: 1,
		msgs: []kafka.Message{
			{Key: []byte("a"), Value: []byte("házakat"), Offset: 1,
				Headers: []kafka.Header{{Key: HeaderLanguage, Value: []byte("hu")}}},
			{Key: []byte("b"), Value: []byte("casas"), Offset: 2,
				Headers: []kafka.Header{{Key: HeaderLanguage, Value: []byte("pt")}}},
		},
	}
	writer := &fakeWriter{failures: 1, want: 2, done: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx, reader, writer) }()

	select {
	case <-writer.done:
	case <-time.After(5 * time.Second):
		t.Fatal("results were not written")
	}
	cancel()
	require.NoError(t, <-errc)

	require.Equal(t, "a-chunk-0", string(writer.written[0].Key))
	require.Equal(t, "b-chunk-0", string(writer.written[1].Key))

	var res Result
	require.NoError(t, json.Unmarshal(writer.written[0].Value, &res))
	require.Equal(t, []string{"ház"}, res.Terms)

	reader.mu.Lock()
	defer reader.mu.Unlock()
	require.Len(t, reader.committed, 2)
}
