package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dialsheet/dialsheet/internal/config"
	"github.com/dialsheet/dialsheet/internal/contactio"
	"github.com/dialsheet/dialsheet/internal/sms"
)

var sendCmd = &cobra.Command{
	Use:   "send <list>",
	Short: "Message every row in a prepared list",
	Long: `Send the configured message to every row of a prepared send list,
personalizing {{name}} (WhatsApp) or {name} (SMS) with each row's
greeting name.

Providers: log (default, prints instead of sending), twilio (SMS and
WhatsApp), sns (SMS only), capture (records in memory and prints the
messages afterwards). Resume an interrupted run with --start-from, and
always try --dry-run first.`,
	Example: `  dialsheet send whatsapp_list.csv --dry-run
  dialsheet send whatsapp_list.csv --provider twilio
  dialsheet send sms_list.csv --channel sms --provider twilio --start-from 120 --limit 50`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().String("config", "", "Path to dialsheet.toml config file")
	sendCmd.Flags().String("channel", "whatsapp", "Transport: whatsapp or sms")
	sendCmd.Flags().String("provider", "", "Provider: log, twilio, sns, or capture")
	sendCmd.Flags().Bool("dry-run", false, "Resolve the send window without sending")
	sendCmd.Flags().Int("start-from", 0, "0-based row index to start at")
	sendCmd.Flags().Int("limit", 0, "Max rows to send (0 means the rest of the list)")
	sendCmd.Flags().Duration("delay", 0, "Pause between sends (e.g. 700ms)")
	sendCmd.Flags().Bool("validate", false, "Re-validate each number and skip failures")
	sendCmd.Flags().String("allow-country", "", "Comma-separated country allowlist (e.g. US,MX)")
	sendCmd.Flags().String("body", "", "SMS body template; {name} expands to the greeting name")
	sendCmd.Flags().String("template", "", "WhatsApp body template; {{name}} expands to the greeting name")
	sendCmd.Flags().BoolP("verbose", "v", false, "Debug logging")
}

func runSend(cmd *cobra.Command, args []string) error {
	// Collect CLI flag overrides.
	flags := make(map[string]string)
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		flags["provider"] = v
	}
	if cmd.Flags().Changed("delay") {
		v, _ := cmd.Flags().GetDuration("delay")
		flags["delay"] = fmt.Sprintf("%d", v.Milliseconds())
	}
	if cmd.Flags().Changed("validate") {
		v, _ := cmd.Flags().GetBool("validate")
		flags["validate"] = fmt.Sprintf("%t", v)
	}
	if v, _ := cmd.Flags().GetString("allow-country"); v != "" {
		flags["allow-country"] = v
	}
	if v, _ := cmd.Flags().GetString("body"); v != "" {
		flags["body"] = v
	}
	if v, _ := cmd.Flags().GetString("template"); v != "" {
		flags["template"] = v
	}

	configPath, _ := cmd.Flags().GetString("config")

	// Load config (defaults → file → env → flags).
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	channel, _ := cmd.Flags().GetString("channel")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// A dry run never touches the provider, so no credential checks.
	if dryRun {
		cfg.Send.Provider = "log"
	}
	if err := cfg.ValidateSend(channel); err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cfg, verbose)

	provider, capture, err := buildProvider(cmd, cfg, channel, logger)
	if err != nil {
		return err
	}

	rows, err := contactio.ReadRows(args[0])
	if err != nil {
		return err
	}

	startFrom, _ := cmd.Flags().GetInt("start-from")
	limit, _ := cmd.Flags().GetInt("limit")

	// Ctrl-C finishes the current send and stops; partial stats still print.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, runErr := sms.NewBulkSender(provider, logger).Run(ctx, rows, sms.BulkOptions{
		Channel:          channel,
		Body:             cfg.Send.Body(channel),
		StartFrom:        startFrom,
		Limit:            limit,
		Delay:            cfg.Send.Delay(),
		DryRun:           dryRun,
		Validate:         cfg.Send.Validate,
		AllowedCountries: cfg.Send.AllowedCountries,
	})

	if capture != nil {
		printCaptured(capture)
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		out := map[string]any{
			"attempted": stats.Attempted,
			"sent":      stats.Sent,
			"skipped":   stats.Skipped,
			"failed":    stats.Failed,
			"dry_run":   dryRun,
		}
		if runErr != nil {
			out["error"] = runErr.Error()
		}
		if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
			return err
		}
		return runErr
	}

	printSendSummary(stats, dryRun)
	return runErr
}

// buildProvider constructs the configured send provider. The capture
// provider is also returned as its concrete type so the caller can print
// what it recorded after the run.
func buildProvider(cmd *cobra.Command, cfg *config.Config, channel string, logger *slog.Logger) (sms.Provider, *sms.CaptureProvider, error) {
	switch cfg.Send.Provider {
	case "", "log":
		return sms.NewLogProvider(logger), nil, nil
	case "capture":
		capture := &sms.CaptureProvider{}
		return capture, capture, nil
	case "twilio":
		t := cfg.Send.Twilio
		return sms.NewTwilioProvider(t.AccountSID, t.AuthToken, t.From(channel), t.BaseURL), nil, nil
	case "sns":
		publisher, err := newSNSPublisher(cmd.Context(), cfg.Send.SNS.Region)
		if err != nil {
			return nil, nil, fmt.Errorf("creating SNS client: %w", err)
		}
		return sms.NewSNSProvider(publisher), nil, nil
	default:
		// Config validation rejects unknown providers before we get here.
		return nil, nil, fmt.Errorf("unknown provider: %s", cfg.Send.Provider)
	}
}

func printSendSummary(stats sms.BulkStats, dryRun bool) {
	fmt.Println()
	if dryRun {
		fmt.Println("  Dry run — nothing was sent.")
	}
	fmt.Printf("  Window:  %d rows\n", stats.Attempted)
	fmt.Printf("  Sent:    %d\n", stats.Sent)
	if stats.Skipped > 0 {
		fmt.Printf("  Skipped: %d\n", stats.Skipped)
	}
	if stats.Failed > 0 {
		fmt.Printf("  Failed:  %d\n", stats.Failed)
	}
}

// printCaptured shows what the capture provider recorded, one message per line.
func printCaptured(c *sms.CaptureProvider) {
	if len(c.Calls) == 0 {
		return
	}
	fmt.Println()
	for _, call := range c.Calls {
		fmt.Printf("  %s  %s\n", call.To, call.Body)
	}
}
