package tcpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/xkmsoft/wordstem/pkg/engine"
	"github.com/xkmsoft/wordstem/pkg/tcpserver"
)

type ClientInterface interface {
	Stem(ctx context.Context, language string, words []string) (*engine.StemResults, error)
	Analyze(ctx context.Context, language string, text string) (*engine.StemResults, error)
	Languages(ctx context.Context) (*engine.LanguagesResults, error)
	Address() string
}

type TCPClient struct {
	Ip      string
	Port    string
	Network string
	Timeout time.Duration
}

func NewTCPClient(ip string, port string, network string) *TCPClient {
	return &TCPClient{
		Ip:      ip,
		Port:    port,
		Network: network,
		Timeout: 10 * time.Second,
	}
}

func (c *TCPClient) Address() string {
	return net.JoinHostPort(c.Ip, c.Port)
}

func (c *TCPClient) Stem(ctx context.Context, language string, words []string) (*engine.StemResults, error) {
	for _, w := range words {
		if strings.ContainsRune(w, '\n') {
			return nil, errors.Errorf("word %q contains a newline", w)
		}
	}
	var results engine.StemResults
	req := tcpserver.Request{
		Command:  tcpserver.STEM,
		Language: language,
		Payload:  []byte(strings.Join(words, "\n")),
	}
	if err := c.roundTrip(ctx, req, &results); err != nil {
		return nil, err
	}
	if results.Error != "" {
		return nil, errors.New(results.Error)
	}
	return &results, nil
}

func (c *TCPClient) Analyze(ctx context.Context, language string, text string) (*engine.StemResults, error) {
	var results engine.StemResults
	req := tcpserver.Request{
		Command:  tcpserver.ANALYZE,
		Language: language,
		Payload:  []byte(text),
	}
	if err := c.roundTrip(ctx, req, &results); err != nil {
		return nil, err
	}
	if results.Error != "" {
		return nil, errors.New(results.Error)
	}
	return &results, nil
}

func (c *TCPClient) Languages(ctx context.Context) (*engine.LanguagesResults, error) {
	var results engine.LanguagesResults
	if err := c.roundTrip(ctx, tcpserver.Request{Command: tcpserver.LANGUAGES}, &results); err != nil {
		return nil, err
	}
	if results.Error != "" {
		return nil, errors.New(results.Error)
	}
	return &results, nil
}

func (c *TCPClient) roundTrip(ctx context.Context, req tcpserver.Request, v interface{}) error {
	dialer := net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.DialContext(ctx, c.Network, c.Address())
	if err != nil {
		return errors.Wrapf(err, "dialing %s", c.Address())
	}
	defer func(conn net.Conn) {
		_ = conn.Close()
	}(conn)

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else if c.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.Timeout))
	}

	if _, err = conn.Write(tcpserver.EncodeRequest(req)); err != nil {
		return errors.Wrap(err, "writing request")
	}

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, conn); err != nil {
		return errors.Wrap(err, "reading response")
	}
	if err = json.Unmarshal(buffer.Bytes(), v); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}
