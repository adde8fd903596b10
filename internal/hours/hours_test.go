package hours

import (
	"strings"
	"testing"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

func torontoGate(t *testing.T) (*Gate, *time.Location) {
	t.Helper()
	g, err := NewGate(DefaultSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g, loc
}

func TestIsOpen(t *testing.T) {
	g, loc := torontoGate(t)
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"Wednesday mid-morning", time.Date(2026, 9, 2, 10, 0, 0, 0, loc), true},
		{"Wednesday at open", time.Date(2026, 9, 2, 8, 0, 0, 0, loc), true},
		{"Wednesday at close", time.Date(2026, 9, 2, 16, 0, 0, 0, loc), false},
		{"Wednesday before open", time.Date(2026, 9, 2, 7, 59, 0, 0, loc), false},
		{"Saturday morning", time.Date(2026, 9, 5, 10, 0, 0, 0, loc), false},
		{"Sunday", time.Date(2026, 9, 6, 12, 0, 0, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsOpen(tt.at); got != tt.want {
				t.Errorf("IsOpen(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestIsOpenConvertsTimezone(t *testing.T) {
	g, _ := torontoGate(t)
	// 14:00 UTC on a Wednesday is 10:00 in Toronto (EDT).
	utc := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	if !g.IsOpen(utc) {
		t.Error("expected open for UTC instant inside local business hours")
	}
}

func TestNextOpeningFromSaturday(t *testing.T) {
	g, loc := torontoGate(t)
	saturday := time.Date(2026, 9, 5, 10, 0, 0, 0, loc)
	if g.IsOpen(saturday) {
		t.Fatal("Saturday should be closed")
	}
	next := g.NextOpening(saturday)
	want := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Errorf("NextOpening = %s, want %s", next, want)
	}
}

func TestNextOpeningLaterSameDay(t *testing.T) {
	g, loc := torontoGate(t)
	early := time.Date(2026, 9, 2, 6, 0, 0, 0, loc)
	next := g.NextOpening(early)
	want := time.Date(2026, 9, 2, 8, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Errorf("NextOpening = %s, want %s", next, want)
	}
}

func TestNextOpeningAfterCloseRollsForward(t *testing.T) {
	g, loc := torontoGate(t)
	friday := time.Date(2026, 9, 4, 17, 0, 0, 0, loc)
	next := g.NextOpening(friday)
	want := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Errorf("NextOpening = %s, want %s", next, want)
	}
}

func TestNextOpeningAllClosedFallsBackToMonday(t *testing.T) {
	g, err := NewGate(Schedule{Timezone: "America/Toronto", Days: map[time.Weekday]DayHours{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, _ := time.LoadLocation("America/Toronto")
	wednesday := time.Date(2026, 9, 2, 12, 0, 0, 0, loc)
	next := g.NextOpening(wednesday)
	want := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Errorf("NextOpening = %s, want %s", next, want)
	}
}

func TestUpdateShallowMerge(t *testing.T) {
	g, loc := torontoGate(t)
	err := g.Update(SchedulePatch{Days: map[time.Weekday]DayHours{
		time.Saturday: {Open: "09:00", Close: "12:00"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsOpen(time.Date(2026, 9, 5, 10, 0, 0, 0, loc)) {
		t.Error("Saturday morning should be open after patch")
	}
	// Untouched days keep their hours.
	if !g.IsOpen(time.Date(2026, 9, 2, 10, 0, 0, 0, loc)) {
		t.Error("Wednesday should remain open after patch")
	}
}

func TestIsOpenHandlesUnpaddedTimes(t *testing.T) {
	g, err := NewGate(Schedule{
		Timezone: "America/Toronto",
		Days: map[time.Weekday]DayHours{
			time.Wednesday: {Open: "8:00", Close: "16:00"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, _ := time.LoadLocation("America/Toronto")
	if !g.IsOpen(time.Date(2026, 9, 2, 9, 0, 0, 0, loc)) {
		t.Error("9:00 should be open against an unpadded 8:00 start")
	}
	if g.IsOpen(time.Date(2026, 9, 2, 7, 0, 0, 0, loc)) {
		t.Error("7:00 should be closed against an unpadded 8:00 start")
	}
}

func TestUpdateRejectsInvalidDayHours(t *testing.T) {
	g, loc := torontoGate(t)
	tests := []struct {
		name  string
		hours DayHours
	}{
		{"hour out of range", DayHours{Open: "25:00", Close: "26:00"}},
		{"minute out of range", DayHours{Open: "08:61", Close: "16:00"}},
		{"not a time", DayHours{Open: "junk", Close: "16:00"}},
		{"open without close", DayHours{Open: "08:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Update(SchedulePatch{Days: map[time.Weekday]DayHours{
				time.Wednesday: tt.hours,
			}})
			if err == nil {
				t.Fatal("expected error for invalid day hours")
			}
			// A rejected patch leaves the schedule untouched.
			if !g.IsOpen(time.Date(2026, 9, 2, 10, 0, 0, 0, loc)) {
				t.Error("Wednesday hours must survive a failed update")
			}
		})
	}
}

func TestUpdateAcceptsEmptyDayAsClosed(t *testing.T) {
	g, loc := torontoGate(t)
	err := g.Update(SchedulePatch{Days: map[time.Weekday]DayHours{
		time.Wednesday: {},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsOpen(time.Date(2026, 9, 2, 10, 0, 0, 0, loc)) {
		t.Error("Wednesday should be closed after an empty-hours patch")
	}
}

func TestUpdateRejectsInvalidTimezone(t *testing.T) {
	g, _ := torontoGate(t)
	if err := g.Update(SchedulePatch{Timezone: "Mars/Olympus"}); err == nil {
		t.Error("expected error for invalid timezone")
	}
	if g.Schedule().Timezone != "America/Toronto" {
		t.Error("failed update must not change the schedule")
	}
}

func TestNewGateRejectsInvalidTimezone(t *testing.T) {
	if _, err := NewGate(Schedule{Timezone: "Nope/Nowhere"}); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestLocalizedMessages(t *testing.T) {
	g, loc := torontoGate(t)
	saturday := time.Date(2026, 9, 5, 10, 0, 0, 0, loc)

	en := g.AfterHoursMessage(models.LangEN, saturday)
	if !strings.Contains(en, "currently closed") {
		t.Errorf("unexpected English after-hours copy: %q", en)
	}
	fr := g.AfterHoursMessage(models.LangFR, saturday)
	if !strings.Contains(fr, "fermés") {
		t.Errorf("unexpected French after-hours copy: %q", fr)
	}
	if !strings.Contains(g.EmergencyContactMessage(models.LangEN), EmergencyPhone) {
		t.Error("English emergency copy should name the phone line")
	}
	if !strings.Contains(g.EmergencyContactMessage(models.LangFR), EmergencyPhone) {
		t.Error("French emergency copy should name the phone line")
	}
}
