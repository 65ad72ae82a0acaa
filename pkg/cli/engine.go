package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xkmsoft/wordstem/pkg/tcpserver"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var Engine x.SubCommand

func init() {
	Engine.Cmd = &cobra.Command{
		Use:   "engine",
		Short: "Run the TCP stemming engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(cmd.Context())
		},
	}
	Engine.EnvPrefix = "WORDSTEM_ENGINE"

	flag := Engine.Cmd.Flags()
	flag.String("host", "localhost", "Hostname to listen on.")
	flag.String("port", "3333", "Port to listen on.")
	flag.String("network", "tcp", "Network should be [tcp, tcp4, tcp6].")
	flag.Int64("cache_size", 64<<20, "Stem cache size in bytes, 0 disables the cache.")
	flag.Duration("timeout", 0, "Per connection read and write deadline, 0 for none.")

	register(&Engine)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runEngine(parent context.Context) error {
	network, err := checkNetwork(Engine.Conf.GetString("network"))
	if err != nil {
		return err
	}
	log := logger(&Engine)
	defer x.Sync(log)

	s, err := tcpserver.NewServer(tcpserver.Options{
		Host:      Engine.Conf.GetString("host"),
		Port:      Engine.Conf.GetString("port"),
		Network:   network,
		CacheSize: Engine.Conf.GetInt64("cache_size"),
		Timeout:   Engine.Conf.GetDuration("timeout"),
	}, log)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(parent)
	defer cancel()
	return s.ListenAndServe(ctx)
}
