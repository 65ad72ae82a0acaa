package cli

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/xkmsoft/wordstem/pkg/grpcserver"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var GRPC x.SubCommand

func init() {
	GRPC.Cmd = &cobra.Command{
		Use:   "grpc",
		Short: "Run the wordstem.Stemmer gRPC service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGRPC(cmd.Context())
		},
	}
	GRPC.EnvPrefix = "WORDSTEM_GRPC"

	flag := GRPC.Cmd.Flags()
	flag.String("addr", ":50051", "Address to listen on.")

	register(&GRPC)
}

func runGRPC(parent context.Context) error {
	log := logger(&GRPC)
	defer x.Sync(log)

	listener, err := net.Listen("tcp", GRPC.Conf.GetString("addr"))
	if err != nil {
		return errors.Wrapf(err, "listening on %s", GRPC.Conf.GetString("addr"))
	}
	ctx, cancel := signalContext(parent)
	defer cancel()
	return grpcserver.NewServer(log).Serve(ctx, listener)
}
