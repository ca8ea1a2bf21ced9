package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cli/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zachdehooge/state-alerts/internal/config"
	"github.com/Zachdehooge/state-alerts/internal/console"
	"github.com/Zachdehooge/state-alerts/internal/controller"
	"github.com/Zachdehooge/state-alerts/internal/fetcher"
	"github.com/Zachdehooge/state-alerts/internal/generator"
	"github.com/Zachdehooge/state-alerts/internal/observability"
	"github.com/Zachdehooge/state-alerts/internal/server"
)

var (
	outputFile string
	verbose    bool
	endpoint   string
	openPage   bool
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "state-alerts [STATE]",
		Short: "Show active weather alerts for a US state",
		Long: `State Alerts fetches active weather alerts for a two-letter state
abbreviation from the National Weather Service and prints a summary line
followed by the alert headlines. Without an argument it prompts for one
abbreviation per line.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := setup(cmd)
			client := newClient(cfg, nil, logger)

			surface := console.NewSurface(cmd.OutOrStdout(), verbose)
			field := &console.Field{}
			ctrl := controller.New(client, surface, field, nil, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if len(args) == 1 {
				field.Set(args[0])
				if err := ctrl.Submit(ctx); err != nil {
					os.Exit(1)
				}
				return
			}

			if err := console.Prompt(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), field, ctrl); err != nil {
				cmd.PrintErrln(fmt.Errorf("read input: %w", err))
				os.Exit(1)
			}
		},
	}

	// Flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Alerts endpoint (overrides ALERTS_ENDPOINT)")

	// Additional commands
	addHTMLCmd(rootCmd)
	addServeCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger, applying flag overrides.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger) {
	cfg, err := config.Load()
	if err != nil {
		cmd.PrintErrln(fmt.Errorf("failed to load config: %w", err))
		os.Exit(1)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if verbose && cfg.LogLevel < logrus.DebugLevel {
		cfg.LogLevel = logrus.DebugLevel
	}
	return cfg, observability.NewLogger(cfg)
}

func newClient(cfg *config.Config, metrics *observability.Metrics, logger *logrus.Logger) *fetcher.Client {
	return fetcher.NewClient(cfg.Endpoint, cfg.UserAgent, cfg.FetchTimeout, metrics, logger)
}

// addHTMLCmd adds an 'html' subcommand that writes the widget page for one state to a file
func addHTMLCmd(rootCmd *cobra.Command) {
	htmlCmd := &cobra.Command{
		Use:   "html STATE",
		Short: "Write a static HTML page with the alerts for a state",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := setup(cmd)
			client := newClient(cfg, nil, logger)

			state := controller.NewState(args[0])
			// A failed submission still produces a page showing the error.
			submitErr := controller.New(client, state, state, nil, logger).Submit(cmd.Context())

			if verbose {
				cmd.Println(fmt.Sprintf("Generating HTML to %s...", outputFile))
			}
			if err := generator.GenerateAlertsHTML(state.Snapshot().Page(), outputFile); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to generate HTML: %w", err))
				os.Exit(1)
			}
			cmd.Println(fmt.Sprintf("Weather alerts saved to %s", outputFile))

			if openPage {
				if err := browser.OpenFile(outputFile); err != nil {
					cmd.PrintErrln(fmt.Errorf("failed to open browser: %w", err))
				}
			}
			if submitErr != nil {
				cmd.PrintErrln(submitErr)
				os.Exit(1)
			}
		},
	}

	htmlCmd.Flags().StringVarP(&outputFile, "output", "o", "alerts.html", "Output HTML file path")
	htmlCmd.Flags().BoolVar(&openPage, "open", false, "Open the generated page in a browser")

	rootCmd.AddCommand(htmlCmd)
}

// addServeCmd adds a 'serve' subcommand that runs the browser widget
func addServeCmd(rootCmd *cobra.Command) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the alerts widget over HTTP",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := setup(cmd)
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			metrics := observability.NewMetrics()
			srv := server.New(cfg, newClient(cfg, metrics, logger), metrics, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmd.Println(fmt.Sprintf("Open at http://localhost%s/", cfg.HTTPAddr))
			if err := srv.Run(ctx); err != nil {
				logger.WithField("error", err).Error("server stopped")
				os.Exit(1)
			}
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")

	rootCmd.AddCommand(serveCmd)
}
