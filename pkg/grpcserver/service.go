// Package grpcserver exposes the stemmer registry as the gRPC service
// wordstem.Stemmer. Messages are plain Go structs sent with a JSON codec, so
// no generated code is involved; clients must use the "json" content
// subtype, which Client does.
package grpcserver

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/xkmsoft/wordstem/pkg/engine"
)

const (
	ServiceName = "wordstem.Stemmer"

	StemMethod      = "/" + ServiceName + "/Stem"
	LanguagesMethod = "/" + ServiceName + "/Languages"
)

// StemRequest asks for the stems of Words. With Pipeline set the words are
// joined and run through the indexing pipeline instead, and the answer
// carries terms.
type StemRequest struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
	Pipeline bool     `json:"pipeline,omitempty"`
}

type LanguagesRequest struct{}

type StemmerServer interface {
	Stem(ctx context.Context, req *StemRequest) (*engine.StemResults, error)
	Languages(ctx context.Context, req *LanguagesRequest) (*engine.LanguagesResults, error)
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

func stemHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StemmerServer).Stem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StemMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StemmerServer).Stem(ctx, req.(*StemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func languagesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LanguagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StemmerServer).Languages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LanguagesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StemmerServer).Languages(ctx, req.(*LanguagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StemmerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Stem", Handler: stemHandler},
		{MethodName: "Languages", Handler: languagesHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterStemmerServer(s grpc.ServiceRegistrar, srv StemmerServer) {
	s.RegisterService(&ServiceDesc, srv)
}
