package engine

import (
	"fmt"
	"strings"

	"github.com/propdesk/tenantpipe/internal/models"
)

// PlaceholderValues carries the typed values that confirmation messages may
// reference. A zero field leaves its placeholder literal in the output.
type PlaceholderValues struct {
	Ticket  string
	Balance *float64
	Date    string
}

// Interpolate substitutes the known placeholders {{ticket}}, {{balance}} and
// {{date}} in msg. Placeholders whose value is absent, and any placeholder
// outside the known set, are left untouched.
func Interpolate(msg string, vals PlaceholderValues, lang models.Language) string {
	if vals.Ticket != "" {
		msg = strings.ReplaceAll(msg, "{{ticket}}", vals.Ticket)
	}
	if vals.Balance != nil {
		msg = strings.ReplaceAll(msg, "{{balance}}", formatCurrency(*vals.Balance, lang))
	}
	if vals.Date != "" {
		msg = strings.ReplaceAll(msg, "{{date}}", vals.Date)
	}
	return msg
}

func formatCurrency(amount float64, lang models.Language) string {
	if lang == models.LangFR {
		s := fmt.Sprintf("%.2f", amount)
		return strings.ReplaceAll(s, ".", ",") + " $"
	}
	return fmt.Sprintf("$%.2f", amount)
}

// placeholderValuesFor derives interpolation values from a dispatch result
// and the payload that produced it.
func placeholderValuesFor(res models.DispatchResult, payload *models.ActionPayload) PlaceholderValues {
	vals := PlaceholderValues{Ticket: res.TicketID()}
	if res.Balance != nil {
		vals.Balance = &res.Balance.Balance
		vals.Date = res.Balance.AsOfDate
	}
	if vals.Date == "" && payload != nil {
		for _, key := range []string{"planned_date", "preferred_date", "target_date"} {
			if s, ok := payload.Data[key].(string); ok && s != "" {
				vals.Date = s
				break
			}
		}
	}
	return vals
}
