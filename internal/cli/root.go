package cli

import (
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersion is called from main to inject build-time version info.
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "dialsheet",
	Short: "Dialsheet — recover usable phone numbers from messy contact exports",
	Long: `Dialsheet reads contact exports full of mangled phone numbers, recovers
one usable number per person in E.164 form, and preps the list for
WhatsApp or SMS outreach. Single binary. One config file.

Get started:
  dialsheet clean contacts.csv clean_list.csv

Then build the send lists and do a dry run:
  dialsheet prepare clean_list.csv
  dialsheet send whatsapp_list.csv --dry-run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output machine-readable JSON summaries")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	initHelp()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
