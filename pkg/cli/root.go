package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkmsoft/wordstem/pkg/x"
)

var RootCmd = newRootCmd()

var rootConf = newRootConf(RootCmd)

// subcommands holds every registered subcommand, in registration order.
var subcommands []*x.SubCommand

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordstem",
		Short: "wordstem: Snowball stemmers as a library, a CLI and a service",
		Long: `
wordstem reduces words to their stems. Hungarian and Portuguese are stemmed
by native Snowball rule tables, the other languages are delegated to existing
stemmer libraries. The same registry is served over TCP, HTTP, gRPC and Kafka.
`,
		SilenceUsage: true,
	}
	addRootFlags(cmd.PersistentFlags())
	return cmd
}

func newRootConf(root *cobra.Command) *viper.Viper {
	conf := viper.New()
	x.Check(conf.BindPFlags(root.PersistentFlags()))
	return conf
}

func addRootFlags(fs *flag.FlagSet) {
	fs.String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	fs.String("log_level", "info", "Log level, one of [debug, info, warn, error].")
	fs.Bool("log_dev", false, "Log in the development console format.")
	fs.String("log_dir", "", "Write rotated log files to this directory instead of stderr.")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// register adds sc to RootCmd once its command and flags are defined. The
// viper instance of sc sees its flags, the root flags, the environment under
// sc.EnvPrefix and the --config file.
func register(sc *x.SubCommand) {
	RootCmd.AddCommand(sc.Cmd)
	sc.Conf = viper.New()
	x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
	x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
	sc.Conf.AutomaticEnv()
	sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	subcommands = append(subcommands, sc)
}

func init() {
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Check(x.Wrapf(sc.Conf.ReadInConfig(), "reading config"))
		}
	})
}

// logger builds the process logger from the shared log flags of sc.
func logger(sc *x.SubCommand) *zap.Logger {
	l, err := x.NewLogger(x.LogOptions{
		Level:       sc.Conf.GetString("log_level"),
		Development: sc.Conf.GetBool("log_dev"),
		Dir:         sc.Conf.GetString("log_dir"),
		Filename:    sc.Cmd.Name() + ".log",
	})
	x.Check(err)
	return l
}

var allowedNetworks = map[string]struct{}{"tcp": {}, "tcp4": {}, "tcp6": {}}

func GetAllowedNetworks() string {
	nets := make([]string, 0, len(allowedNetworks))
	for n := range allowedNetworks {
		nets = append(nets, n)
	}
	sort.Strings(nets)
	return strings.Join(nets, ", ")
}

func checkNetwork(network string) (string, error) {
	network = strings.ToLower(network)
	if _, ok := allowedNetworks[network]; !ok {
		return "", fmt.Errorf("not allowed network %s, network should be one of: %s", network, GetAllowedNetworks())
	}
	return network, nil
}
