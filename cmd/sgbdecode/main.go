package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sgbdecode/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "sgbdecode",
		Short: "COSPAS-SARSAT second generation beacon decoder",
		Long: `Decoder for COSPAS-SARSAT second generation beacon messages (C/T.018).

Decodes 202-bit detection messages, 23 hex character beacon identifiers and
BCH(250,202) parity, one message at a time or as a newline delimited stream.

Example usage:
  sgbdecode detection 0039823D32618658622811F0000000000003FFF004030680258
  sgbdecode id 9934039823D000000000000 --format text
  sgbdecode stream --input messages.txt --log-dir ./logs --metrics-addr :9090`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion(stdout)
				return nil
			}
			return cmd.Help()
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&config.Format, "format", "o", app.DefaultFormat, "Output format (json or text)")
	flags.BoolVar(&config.Pretty, "pretty", false, "Indent JSON output")
	flags.StringVar(&config.TACFile, "tac-file", "", "YAML file replacing the built-in TAC descriptions")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	rootCmd.AddCommand(
		newDetectionCmd(&config, stdout),
		newIDCmd(&config, stdout),
		newBCHCmd(&config, stdout),
		newStreamCmd(&config, stdin, stdout),
	)
	return rootCmd
}

func newDetectionCmd(config *app.Config, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "detection <hex|bits>",
		Short: "Decode a 202-bit detection message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication(*config, stdout)
			if err != nil {
				return err
			}
			defer application.Close()

			d, err := application.DecodeDetection(args[0])
			if err != nil {
				return err
			}
			return application.Print(d)
		},
	}
}

func newIDCmd(config *app.Config, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "id <23-hex>",
		Short: "Decode a 23 hex character beacon identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication(*config, stdout)
			if err != nil {
				return err
			}
			defer application.Close()

			id, err := application.DecodeBeaconID(args[0])
			if err != nil {
				return err
			}
			return application.Print(id)
		},
	}
}

func newBCHCmd(config *app.Config, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "bch <hex|bits>",
		Short: "Compute the BCH parity of a message or verify a 250-bit transmission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication(*config, stdout)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.BCH(args[0])
			if err != nil {
				return err
			}
			return application.Print(result)
		},
	}
}

func newStreamCmd(config *app.Config, stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Decode newline delimited messages from stdin or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication(*config, stdout)
			if err != nil {
				return err
			}

			in := stdin
			if config.Input != "" {
				f, err := os.Open(config.Input)
				if err != nil {
					application.Close()
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			_, err = application.Stream(cmd.Context(), in)
			if cerr := application.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&config.Input, "input", "i", "", "Read messages from file instead of stdin")
	cmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "", "Archive decoded messages to daily files in this directory")
	cmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", app.DefaultLogRotateUTC, "Use UTC for archive rotation")
	cmd.Flags().IntVar(&config.LogMaxDays, "log-max-days", app.DefaultLogMaxDays, "Remove archive files older than this many days (0 keeps all)")
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	return cmd
}
