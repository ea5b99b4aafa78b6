package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	pg "github.com/predictionguard/go-client"
	"github.com/predictionguard/go-client/internal/logging"
)

// globalOptions holds the persistent flag values.
type globalOptions struct {
	envFile  string
	logLevel string
	output   string
	noColor  bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "pgctl",
		Short: "Call the Prediction Guard API",
		Long: `pgctl sends requests to the Prediction Guard API and prints the responses.

The API key is read from PREDICTIONGUARD_API_KEY and the endpoint from
PREDICTIONGUARD_URL, either in the environment or in the file given by
--env-file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			switch opts.output {
			case outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output format %q", opts.output)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "file to read configuration from, skipped if missing")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newHealthCmd(opts),
		newModelsCmd(opts),
		newChatCmd(opts),
		newCompleteCmd(opts),
		newEmbedCmd(opts),
		newFactualityCmd(opts),
		newInjectionCmd(opts),
		newPIICmd(opts),
		newToxicityCmd(opts),
		newTranslateCmd(opts),
		newRerankCmd(opts),
		newTokenizeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// client builds an API client from the configured env file and log level.
func (o *globalOptions) client() (*pg.Client, error) {
	cfg, err := pg.LoadConfig(o.envFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return pg.NewClient(cfg, pg.WithLogger(logger), pg.WithUserAgent("pgctl/"+pg.Version))
}

// print renders v to the command's output in the selected format.
func (o *globalOptions) print(cmd *cobra.Command, v any) error {
	return render(cmd.OutOrStdout(), o.output, v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pgctl %s\n", pg.Version)
		},
	}
}

func newHealthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			text, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			_, err = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
