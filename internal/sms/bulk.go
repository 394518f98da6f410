package sms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dialsheet/dialsheet/internal/contacts"
)

// BulkStats summarizes one bulk run over a window of rows.
type BulkStats struct {
	Attempted int
	Sent      int
	Skipped   int
	Failed    int
}

// BulkOptions controls one bulk run.
type BulkOptions struct {
	// Channel selects the destination address form: "whatsapp" targets
	// whatsapp:+E164 addresses, anything else sends plain SMS.
	Channel string

	// Body is the message template. Both {{name}} and {name} expand to
	// the row's greeting name.
	Body string

	StartFrom int           // 0-based row index to start at
	Limit     int           // max rows to send; 0 means the rest of the list
	Delay     time.Duration // pause between consecutive sends
	DryRun    bool          // resolve and count rows without calling the provider

	// Validate re-checks each number against libphonenumber and skips
	// rows that fail. AllowedCountries, when non-empty, skips rows whose
	// number resolves outside the listed ISO 3166-1 alpha-2 codes.
	Validate         bool
	AllowedCountries []string
}

// BulkSender walks a prepared contact list and delivers one message per row.
type BulkSender struct {
	provider Provider
	logger   *slog.Logger
}

// NewBulkSender creates a BulkSender. If logger is nil, slog.Default() is used.
func NewBulkSender(provider Provider, logger *slog.Logger) *BulkSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &BulkSender{provider: provider, logger: logger}
}

// Run sends the personalized body to every row in the window
// [StartFrom, StartFrom+Limit). Rows without a phone, and rows that fail
// the optional validation or country gates, are skipped; provider errors
// are logged and counted without stopping the run. Dry runs count toward
// Sent but never call the provider and never delay. Returns partial stats
// with ctx.Err() when the context is cancelled mid-run.
func (s *BulkSender) Run(ctx context.Context, rows []contacts.Row, opts BulkOptions) (BulkStats, error) {
	start := max(opts.StartFrom, 0)
	end := len(rows)
	if opts.Limit > 0 {
		end = min(end, start+opts.Limit)
	}
	if start > end {
		start = end
	}

	logger := s.logger.With("run_id", uuid.NewString(), "channel", opts.Channel)
	logger.Info("bulk send starting", "rows", len(rows), "start", start, "end", end, "dry_run", opts.DryRun)

	stats := BulkStats{Attempted: end - start}
	whatsapp := strings.EqualFold(opts.Channel, contacts.ChannelWhatsApp)

	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("sms: bulk send: %w", err)
		}

		row := rows[i]
		phone := strings.TrimSpace(row.Phone)
		if phone == "" {
			stats.Skipped++
			logger.Warn("skipping row without phone", "row", i, "name", row.Name)
			continue
		}
		if opts.Validate {
			e164, err := ValidatePhone(phone)
			if err != nil {
				stats.Skipped++
				logger.Warn("skipping invalid number", "row", i, "to", phone)
				continue
			}
			phone = e164
		}
		if !IsAllowedCountry(phone, opts.AllowedCountries) {
			stats.Skipped++
			logger.Warn("skipping number outside allowed countries", "row", i, "to", phone)
			continue
		}

		body := personalize(opts.Body, RecipientName(row))
		to := phone
		if whatsapp {
			to = "whatsapp:" + phone
		}

		if opts.DryRun {
			stats.Sent++
			logger.Info("dry run", "row", i, "to", to, "body", body)
			continue
		}

		result, err := s.provider.Send(ctx, to, body)
		if err != nil {
			stats.Failed++
			logger.Error("send failed", "row", i, "to", to, "error", err)
			continue
		}
		stats.Sent++
		logger.Info("sent", "row", i, "to", to, "message_id", result.MessageID, "status", result.Status)

		if i < end-1 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return stats, fmt.Errorf("sms: bulk send: %w", ctx.Err())
			case <-time.After(opts.Delay):
			}
		}
	}

	logger.Info("bulk send done",
		"attempted", stats.Attempted, "sent", stats.Sent, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

// RecipientName picks the name a message greets a row by: GreetingName,
// then FirstName, then Name, then "friend".
func RecipientName(row contacts.Row) string {
	for _, s := range []string{row.GreetingName, row.FirstName, row.Name} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return "friend"
}

// personalize expands both template spellings of the name token.
func personalize(template, name string) string {
	template = strings.ReplaceAll(template, "{{name}}", name)
	return strings.ReplaceAll(template, "{name}", name)
}
