package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialsheet/dialsheet/internal/cli/ui"
	"github.com/dialsheet/dialsheet/internal/contactio"
	"github.com/dialsheet/dialsheet/internal/contacts"
	"github.com/dialsheet/dialsheet/internal/lists"
)

var splitCmd = &cobra.Command{
	Use:   "split <input>",
	Short: "Write forced-channel copies of a list",
	Long: `Split a list into one file per channel, with every row's channel
overwritten. Unlike prepare, nothing is filtered: both outputs carry
the full list, for campaigns that try WhatsApp first and fall back
to SMS for the same people.`,
	Example: `  dialsheet split master_list.csv
  dialsheet split master_list.csv --whatsapp wa_all.csv --sms sms_all.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("whatsapp", "whatsapp_list.csv", "WhatsApp copy output path")
	splitCmd.Flags().String("sms", "sms_list.csv", "SMS copy output path")
}

func runSplit(cmd *cobra.Command, args []string) error {
	waPath, _ := cmd.Flags().GetString("whatsapp")
	smsPath, _ := cmd.Flags().GetString("sms")

	rows, err := contactio.ReadRows(args[0])
	if err != nil {
		return err
	}

	whatsapp := lists.ForceChannel(rows, contacts.ChannelWhatsApp)
	smsRows := lists.ForceChannel(rows, contacts.ChannelSMS)

	if err := contactio.WriteFile(waPath, whatsapp, true); err != nil {
		return err
	}
	if err := contactio.WriteFile(smsPath, smsRows, true); err != nil {
		return err
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"rows":     len(rows),
			"whatsapp": waPath,
			"sms":      smsPath,
		})
	}

	fmt.Printf("  %d rows %s %s, %s\n", len(rows), ui.SymbolArrow, waPath, smsPath)
	return nil
}
