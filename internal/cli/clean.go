package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialsheet/dialsheet/internal/config"
	"github.com/dialsheet/dialsheet/internal/contacts"
	"github.com/dialsheet/dialsheet/internal/phone"
	"github.com/dialsheet/dialsheet/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input> <output>",
	Short: "Recover one usable number per contact",
	Long: `Clean a contact export: pull phone candidates out of every phone field,
normalize them to E.164, pick the best number per contact, and drop
duplicates across the batch.

Google Contacts exports and generic Name/Phone layouts are detected from
the header row. Input may be .csv, .tsv, or .xlsx.`,
	Example: `  dialsheet clean contacts.csv clean_list.csv
  dialsheet clean export.xlsx clean_list.csv --default-country +52 --mx-mobile-one
  dialsheet clean dump.txt clean_list.csv --format csv`,
	Args: cobra.ExactArgs(2),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("config", "", "Path to dialsheet.toml config file")
	cleanCmd.Flags().String("format", "", "Force the input format: csv, tsv, or xlsx")
	cleanCmd.Flags().String("default-country", "", "Country code for bare 10-digit numbers (e.g. +52)")
	cleanCmd.Flags().Bool("mx-mobile-one", false, "Insert the legacy mobile '1' after Mexico's 52 prefix")
	cleanCmd.Flags().String("channel", "", "Channel stamped on every output row: whatsapp or sms")
	cleanCmd.Flags().BoolP("verbose", "v", false, "Debug logging")
}

func runClean(cmd *cobra.Command, args []string) error {
	// Collect CLI flag overrides.
	flags := make(map[string]string)
	if v, _ := cmd.Flags().GetString("default-country"); v != "" {
		flags["default-country"] = v
	}
	if cmd.Flags().Changed("mx-mobile-one") {
		v, _ := cmd.Flags().GetBool("mx-mobile-one")
		flags["mx-mobile-one"] = fmt.Sprintf("%t", v)
	}
	if v, _ := cmd.Flags().GetString("channel"); v != "" {
		flags["channel"] = v
	}

	configPath, _ := cmd.Flags().GetString("config")

	// Load config (defaults → file → env → flags).
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "", "csv", "tsv", "xlsx":
	default:
		return fmt.Errorf("unknown format %q (expected csv, tsv, or xlsx)", format)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cfg, verbose)

	norm := phone.NewNormalizer(phone.Options{
		DefaultCountryCode: cfg.Clean.DefaultCountryCode,
		MXMobileOne:        cfg.Clean.MXMobileOne,
	})
	cleaner := contacts.NewCleaner(contacts.NewSelector(norm, cfg.Clean.MobileLabels), cfg.Clean.Channel)

	jsonOut, _ := cmd.Flags().GetBool("json")
	var progress pipeline.ProgressReporter = pipeline.NewCLIReporter(os.Stderr)
	if jsonOut {
		progress = pipeline.NopReporter{}
	}

	runner := pipeline.NewRunner(cleaner, progress, logger)
	runner.InputFormat = format

	res, err := runner.Clean(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"schema":     res.Schema.Label(),
			"records":    res.Stats.Records,
			"resolved":   res.Stats.Resolved,
			"duplicates": res.Stats.Duplicates,
			"dropped":    res.Stats.Dropped,
			"countries":  res.Countries,
			"elapsed_ms": res.Elapsed.Milliseconds(),
			"output":     args[1],
		})
	}

	res.PrintReport(os.Stdout)
	return nil
}
