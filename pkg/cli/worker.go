package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xkmsoft/wordstem/pkg/kafkaworker"
	"github.com/xkmsoft/wordstem/pkg/x"
)

var Worker x.SubCommand

func init() {
	Worker.Cmd = &cobra.Command{
		Use:   "worker",
		Short: "Stem word batches from a Kafka topic",
		Long: `Worker reads word batches from the words topic, runs the indexing pipeline of
the language named in each message's "language" header and writes the terms
to the stems topic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd.Context())
		},
	}
	Worker.EnvPrefix = "WORDSTEM_WORKER"

	flag := Worker.Cmd.Flags()
	flag.StringSlice("brokers", []string{"localhost:29092"}, "Kafka brokers.")
	flag.String("words_topic", "words", "Topic to read word batches from.")
	flag.String("stems_topic", "stems", "Topic to write stems to.")
	flag.String("group", "wordstem-worker", "Consumer group.")

	register(&Worker)
}

func runWorker(parent context.Context) error {
	log := logger(&Worker)
	defer x.Sync(log)

	w := kafkaworker.NewWorker(kafkaworker.Config{
		Brokers:    Worker.GetStringSliceP("brokers", "", []string{"localhost:29092"}),
		WordsTopic: Worker.Conf.GetString("words_topic"),
		StemsTopic: Worker.Conf.GetString("stems_topic"),
		GroupID:    Worker.Conf.GetString("group"),
	}, log)

	reader := w.NewReader()
	defer func() { x.Ignore(reader.Close()) }()
	writer := w.NewWriter()
	defer func() { x.Ignore(writer.Close()) }()

	ctx, cancel := signalContext(parent)
	defer cancel()
	return w.Run(ctx, reader, writer)
}
