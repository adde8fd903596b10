package engine

import (
	"testing"

	"github.com/propdesk/tenantpipe/internal/models"
)

func TestInterpolate(t *testing.T) {
	balance := 1234.5
	tests := []struct {
		name string
		msg  string
		vals PlaceholderValues
		lang models.Language
		want string
	}{
		{
			name: "ticket replaced",
			msg:  "Created WO #{{ticket}}.",
			vals: PlaceholderValues{Ticket: "WO-42"},
			lang: models.LangEN,
			want: "Created WO #WO-42.",
		},
		{
			name: "missing ticket stays literal",
			msg:  "Created WO #{{ticket}}.",
			vals: PlaceholderValues{},
			lang: models.LangEN,
			want: "Created WO #{{ticket}}.",
		},
		{
			name: "balance and date in English",
			msg:  "Your balance is {{balance}} as of {{date}}.",
			vals: PlaceholderValues{Balance: &balance, Date: "2026-08-30"},
			lang: models.LangEN,
			want: "Your balance is $1234.50 as of 2026-08-30.",
		},
		{
			name: "balance in French",
			msg:  "Votre solde est de {{balance}}.",
			vals: PlaceholderValues{Balance: &balance},
			lang: models.LangFR,
			want: "Votre solde est de 1234,50 $.",
		},
		{
			name: "unknown placeholder untouched",
			msg:  "Ref {{ticket}} for {{tenant}}.",
			vals: PlaceholderValues{Ticket: "T-1"},
			lang: models.LangEN,
			want: "Ref T-1 for {{tenant}}.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.msg, tt.vals, tt.lang); got != tt.want {
				t.Errorf("Interpolate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaceholderValuesFor(t *testing.T) {
	res := models.DispatchResult{
		Endpoint: models.EndpointLedger,
		Success:  true,
		Balance:  &models.BalanceReceipt{Balance: 500.25, AsOfDate: "2026-08-30"},
	}
	vals := placeholderValuesFor(res, nil)
	if vals.Balance == nil || *vals.Balance != 500.25 {
		t.Error("balance not carried over")
	}
	if vals.Date != "2026-08-30" {
		t.Errorf("date = %q, want 2026-08-30", vals.Date)
	}

	appt := models.DispatchResult{
		Endpoint:    models.EndpointMoveIn,
		Success:     true,
		Appointment: &models.AppointmentReceipt{AppointmentID: "AP-1"},
	}
	payload := &models.ActionPayload{Data: map[string]any{"planned_date": "2026-10-01"}}
	vals = placeholderValuesFor(appt, payload)
	if vals.Ticket != "AP-1" {
		t.Errorf("ticket = %q, want AP-1", vals.Ticket)
	}
	if vals.Date != "2026-10-01" {
		t.Errorf("date = %q, want 2026-10-01", vals.Date)
	}
}
