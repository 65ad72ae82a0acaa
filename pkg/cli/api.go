package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkmsoft/wordstem/pkg/apiserver"
	"github.com/xkmsoft/wordstem/pkg/grpcserver"
	"github.com/xkmsoft/wordstem/pkg/tcpclient"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var API x.SubCommand

func init() {
	API.Cmd = &cobra.Command{
		Use:   "api",
		Short: "Run the HTTP gateway in front of the stemming engine",
		Long: `Api serves POST /api/stem, GET /api/languages and GET /metrics. Requests are
forwarded to the TCP engine, or to a gRPC server when --grpc is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPI(cmd.Context())
		},
	}
	API.EnvPrefix = "WORDSTEM_API"

	flag := API.Cmd.Flags()
	flag.Int("port", 3000, "HTTP port.")
	flag.String("engine_host", "localhost", "TCP engine host.")
	flag.String("engine_port", "3333", "TCP engine port.")
	flag.String("engine_network", "tcp", "TCP engine network, one of [tcp, tcp4, tcp6].")
	flag.String("grpc", "", "Use the gRPC server at this address instead of the TCP engine.")
	flag.Duration("timeout", 30*time.Second, "Backend timeout per request.")

	register(&API)
}

func runAPI(parent context.Context) error {
	log := logger(&API)
	defer x.Sync(log)

	var backend apiserver.Backend
	if target := API.Conf.GetString("grpc"); target != "" {
		client, err := grpcserver.Dial(target)
		if err != nil {
			return err
		}
		defer func() { x.Ignore(client.Close()) }()
		backend = client
	} else {
		network, err := checkNetwork(API.Conf.GetString("engine_network"))
		if err != nil {
			return err
		}
		backend = tcpclient.NewTCPClient(API.Conf.GetString("engine_host"), API.Conf.GetString("engine_port"), network)
	}

	s := apiserver.NewServer(backend, log)
	s.Timeout = API.GetDurationP("timeout", "", 30*time.Second)

	addr := net.JoinHostPort("", API.Conf.GetString("port"))
	srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}

	ctx, cancel := signalContext(parent)
	defer cancel()
	go func() {
		<-ctx.Done()
		shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		x.Ignore(srv.Shutdown(shutdown))
	}()

	log.Info("API listening", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving http")
	}
	return nil
}
