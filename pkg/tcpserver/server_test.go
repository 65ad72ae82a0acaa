package tcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xkmsoft/wordstem/pkg/engine"
)

func TestRequestRoundTrip(t *testing.T) {
	in := Request{Command: STEM, Language: "hu", Payload: []byte("házakat\n\n kutyával \n")}
	out, err := ReadRequest(bytes.NewReader(EncodeRequest(in)))
	require.NoError(t, err)
	require.Equal(t, in.Command, out.Command)
	require.Equal(t, "hu", out.Language)
	require.Equal(t, []string{"házakat", "kutyával"}, out.Words())

	out, err = ReadRequest(bytes.NewReader(EncodeRequest(Request{Command: LANGUAGES})))
	require.NoError(t, err)
	require.Empty(t, out.Language)
	require.Empty(t, out.Payload)
}

func TestReadRequestErrors(t *testing.T) {
	_, err := ReadRequest(bytes.NewReader(nil))
	require.Error(t, err)

	_, err = ReadRequest(bytes.NewReader([]byte{9, 0, 0, 0, 0, 0, 0, 0, 0}))
	require.Error(t, err)

	long := EncodeRequest(Request{Command: STEM, Language: string(make([]byte, MaxLanguageLength+1))})
	_, err = ReadRequest(bytes.NewReader(long))
	require.Error(t, err)

	truncated := EncodeRequest(Request{Command: STEM, Language: "pt", Payload: []byte("casas")})
	_, err = ReadRequest(bytes.NewReader(truncated[:len(truncated)-2]))
	require.Error(t, err)
}

func TestUint32(t *testing.T) {
	require.Equal(t, []byte{0, 0, 1, 0}, Uint32ToBytes(256))
	require.Equal(t, uint32(256), BytesToUint32([]byte{0, 0, 1, 0}))
}

func TestProcess(t *testing.T) {
	s, err := NewServer(Options{Network: "tcp", CacheSize: 1 << 20}, nil)
	require.NoError(t, err)
	defer s.Close()

	res := s.Process(&Request{Command: STEM, Language: "pt-BR", Payload: []byte("casas\nnações")})
	stem, ok := res.(engine.StemResults)
	require.True(t, ok)
	require.Empty(t, stem.Error)
	require.Equal(t, "pt", stem.Language.Code)
	require.Equal(t, []engine.WordStem{{Word: "casas", Stem: "cas"}, {Word: "nações", Stem: "naçõ"}}, stem.Stems)

	// Sets are buffered; a hit or a dropped set both yield the same stem.
	s.Cache.Wait()
	res = s.Process(&Request{Command: STEM, Language: "portuguese", Payload: []byte("casas")})
	require.Equal(t, "cas", res.(engine.StemResults).Stems[0].Stem)

	res = s.Process(&Request{Command: ANALYZE, Language: "hu", Payload: []byte("A házakat és a kutyával.")})
	require.Equal(t, []string{"ház", "kuty"}, res.(engine.StemResults).Terms)

	res = s.Process(&Request{Command: STEM, Language: "klingon"})
	require.NotEmpty(t, res.(engine.StemResults).Error)

	res = s.Process(&Request{Command: LANGUAGES})
	require.Len(t, res.(engine.LanguagesResults).Languages, len(engine.Languages()))
}

func TestPipelineRegistry(t *testing.T) {
	s, err := NewServer(Options{Network: "tcp"}, nil)
	require.NoError(t, err)

	a, err := s.Pipeline("pt")
	require.NoError(t, err)
	b, err := s.Pipeline("Portuguese")
	require.NoError(t, err)
	require.Same(t, a, b)

	_, err = s.Pipeline("")
	require.Error(t, err)
}

func TestAcceptConnections(t *testing.T) {
	s, err := NewServer(Options{Network: "tcp", Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.AcceptConnections(ctx, listener)
	}()

	send := func(req []byte) []byte {
		conn, err := net.Dial("tcp", listener.Addr().String())
		require.NoError(t, err)
		defer conn.Close()
		_, err = conn.Write(req)
		require.NoError(t, err)
		body, err := io.ReadAll(conn)
		require.NoError(t, err)
		return body
	}

	var results engine.StemResults
	body := send(EncodeRequest(Request{Command: STEM, Language: "hu", Payload: []byte("házakat")}))
	require.NoError(t, json.Unmarshal(body, &results))
	require.Equal(t, []engine.WordStem{{Word: "házakat", Stem: "ház"}}, results.Stems)

	results = engine.StemResults{}
	body = send([]byte{7})
	require.NoError(t, json.Unmarshal(body, &results))
	require.NotEmpty(t, results.Error)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestResponseJSON(t *testing.T) {
	var results engine.StemResults
	require.NoError(t, json.Unmarshal([]byte(ResponseJSON(engine.StemResults{Error: "bad"})), &results))
	require.Equal(t, "bad", results.Error)

	results = engine.StemResults{}
	require.NoError(t, json.Unmarshal([]byte(ResponseJSON(make(chan int))), &results))
	require.Contains(t, results.Error, "unsupported type")
}

func TestAcceptConnectionsListenerClosed(t *testing.T) {
	s, err := NewServer(Options{Network: "tcp"}, nil)
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- s.AcceptConnections(ctx, listener)
	}()
	require.NoError(t, listener.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
