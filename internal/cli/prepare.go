package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialsheet/dialsheet/internal/cli/ui"
	"github.com/dialsheet/dialsheet/internal/config"
	"github.com/dialsheet/dialsheet/internal/contactio"
	"github.com/dialsheet/dialsheet/internal/contacts"
	"github.com/dialsheet/dialsheet/internal/lists"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <input>",
	Short: "Add greeting names and build per-channel send lists",
	Long: `Prepare a cleaned list for sending: derive FirstName and GreetingName
for every row, then write the master list plus one send list per channel.

The WhatsApp list keeps the rows already marked for WhatsApp. The SMS
list takes the rows in countries the SMS route covers (prepare.sms_countries)
and forces their channel to SMS.`,
	Example: `  dialsheet prepare clean_list.csv
  dialsheet prepare clean_list.csv --master out/master.csv --whatsapp out/wa.csv --sms out/sms.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().String("config", "", "Path to dialsheet.toml config file")
	prepareCmd.Flags().String("master", "master_list.csv", "Master list output path")
	prepareCmd.Flags().String("whatsapp", "whatsapp_list.csv", "WhatsApp send list output path")
	prepareCmd.Flags().String("sms", "sms_list.csv", "SMS send list output path")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	masterPath, _ := cmd.Flags().GetString("master")
	waPath, _ := cmd.Flags().GetString("whatsapp")
	smsPath, _ := cmd.Flags().GetString("sms")
	jsonOut, _ := cmd.Flags().GetBool("json")

	stepw := io.Writer(os.Stderr)
	if jsonOut {
		stepw = io.Discard
	}
	sp := ui.NewStepSpinner(stepw, jsonOut || !colorEnabled())

	sp.Start(fmt.Sprintf("Reading %s", args[0]))
	rows, err := contactio.ReadRows(args[0])
	if err != nil {
		sp.Fail()
		return err
	}
	sp.Done()

	lists.Enrich(rows, cfg.Prepare.GreetingFallback)

	whatsapp := lists.WhatsAppRows(rows)
	smsRows := lists.SMSRows(rows, cfg.Prepare.SMSCountries)

	outputs := []struct {
		path string
		rows []contacts.Row
	}{
		{masterPath, rows},
		{waPath, whatsapp},
		{smsPath, smsRows},
	}
	for _, out := range outputs {
		sp.Start(fmt.Sprintf("Writing %s", out.path))
		if err := contactio.WriteFile(out.path, out.rows, true); err != nil {
			sp.Fail()
			return err
		}
		sp.Done()
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"master":   map[string]any{"path": masterPath, "rows": len(rows)},
			"whatsapp": map[string]any{"path": waPath, "rows": len(whatsapp)},
			"sms":      map[string]any{"path": smsPath, "rows": len(smsRows)},
		})
	}

	fmt.Println()
	fmt.Printf("  Master:    %d rows %s %s\n", len(rows), ui.SymbolArrow, masterPath)
	fmt.Printf("  WhatsApp:  %d rows %s %s\n", len(whatsapp), ui.SymbolArrow, waPath)
	fmt.Printf("  SMS:       %d rows %s %s\n", len(smsRows), ui.SymbolArrow, smsPath)
	return nil
}
