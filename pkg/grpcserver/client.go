package grpcserver

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/xkmsoft/wordstem/pkg/engine"
)

// Client calls a wordstem.Stemmer service. It satisfies the HTTP gateway's
// Backend interface.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to target without transport security.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(jsonCodec{}.Name())),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", target)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Stem(ctx context.Context, language string, words []string) (*engine.StemResults, error) {
	out := new(engine.StemResults)
	req := &StemRequest{Language: language, Words: words}
	if err := c.conn.Invoke(ctx, StemMethod, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Analyze(ctx context.Context, language string, text string) (*engine.StemResults, error) {
	out := new(engine.StemResults)
	req := &StemRequest{Language: language, Words: []string{text}, Pipeline: true}
	if err := c.conn.Invoke(ctx, StemMethod, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Languages(ctx context.Context) (*engine.LanguagesResults, error) {
	out := new(engine.LanguagesResults)
	if err := c.conn.Invoke(ctx, LanguagesMethod, &LanguagesRequest{}, out); err != nil {
		return nil, err
	}
	return out, nil
}
