// Package hours implements the business-hours gate: a schedule plus
// timezone that answers "open now?" and "next opening?", and renders the
// localized after-hours and emergency-contact copy.
package hours

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

// DayHours is one weekday's open/close window in local "HH:MM" strings.
// An empty pair means closed that day.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Schedule is a weekly business-hours configuration.
type Schedule struct {
	Timezone string                    `json:"timezone"`
	Days     map[time.Weekday]DayHours `json:"days"`
}

// SchedulePatch is a partial schedule for runtime updates. Nil fields are
// left untouched; day entries present in the patch replace that day.
type SchedulePatch struct {
	Timezone string                    `json:"timezone,omitempty"`
	Days     map[time.Weekday]DayHours `json:"days,omitempty"`
}

// EmergencyPhone is the line named in the localized emergency copy.
const EmergencyPhone = "873.660.1498"

// DefaultSchedule returns Mon-Fri 08:00-16:00 in America/Toronto.
func DefaultSchedule() Schedule {
	return Schedule{
		Timezone: "America/Toronto",
		Days: map[time.Weekday]DayHours{
			time.Monday:    {Open: "08:00", Close: "16:00"},
			time.Tuesday:   {Open: "08:00", Close: "16:00"},
			time.Wednesday: {Open: "08:00", Close: "16:00"},
			time.Thursday:  {Open: "08:00", Close: "16:00"},
			time.Friday:    {Open: "08:00", Close: "16:00"},
		},
	}
}

// Gate evaluates the schedule. It is safe for concurrent use; the schedule
// can be updated at runtime via Update.
type Gate struct {
	mu       sync.RWMutex
	schedule Schedule
	loc      *time.Location
}

// NewGate creates a gate for the given schedule.
func NewGate(s Schedule) (*Gate, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return &Gate{schedule: s, loc: loc}, nil
}

// Schedule returns a copy of the current schedule.
func (g *Gate) Schedule() Schedule {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cp := Schedule{Timezone: g.schedule.Timezone, Days: make(map[time.Weekday]DayHours, len(g.schedule.Days))}
	for d, h := range g.schedule.Days {
		cp.Days[d] = h
	}
	return cp
}

// Update shallow-merges the patch into the schedule. An invalid timezone or
// day entry in the patch is rejected without changing anything. An
// all-empty day entry means closed that day.
func (g *Gate) Update(patch SchedulePatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for d, h := range patch.Days {
		if h.Open == "" && h.Close == "" {
			continue
		}
		if _, err := parseMinutes(h.Open); err != nil {
			return fmt.Errorf("day %s: %w", d, err)
		}
		if _, err := parseMinutes(h.Close); err != nil {
			return fmt.Errorf("day %s: %w", d, err)
		}
	}
	if patch.Timezone != "" && patch.Timezone != g.schedule.Timezone {
		loc, err := time.LoadLocation(patch.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", patch.Timezone, err)
		}
		g.schedule.Timezone = patch.Timezone
		g.loc = loc
	}
	for d, h := range patch.Days {
		g.schedule.Days[d] = h
	}
	slog.Info("Gate.Update: business hours updated", "timezone", g.schedule.Timezone)
	return nil
}

// IsOpen reports whether the business is open at the given instant. The
// interval is half-open: the closing minute is already closed.
func (g *Gate) IsOpen(now time.Time) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	local := now.In(g.loc)
	day, ok := g.schedule.Days[local.Weekday()]
	if !ok || day.Open == "" || day.Close == "" {
		return false
	}
	open, err := parseMinutes(day.Open)
	if err != nil {
		return false
	}
	closeAt, err := parseMinutes(day.Close)
	if err != nil {
		return false
	}
	minute := local.Hour()*60 + local.Minute()
	return minute >= open && minute < closeAt
}

// NextOpening returns the next opening instant, scanning forward up to 7
// days inclusive of today. For today, the opening qualifies only when the
// current local time is still before it. When nothing in the window
// qualifies it falls back to next Monday at 08:00.
func (g *Gate) NextOpening(now time.Time) time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	local := now.In(g.loc)
	for i := 0; i < 7; i++ {
		check := local.AddDate(0, 0, i)
		day, ok := g.schedule.Days[check.Weekday()]
		if !ok || day.Open == "" {
			continue
		}
		if i == 0 {
			open, err := parseMinutes(day.Open)
			if err != nil || local.Hour()*60+local.Minute() >= open {
				continue
			}
		}
		if t, err := atLocalTime(check, day.Open, g.loc); err == nil {
			return t
		}
	}
	// Last resort when the whole week is closed.
	daysToMonday := (int(time.Monday) - int(local.Weekday()) + 7) % 7
	if daysToMonday == 0 {
		daysToMonday = 7
	}
	monday := local.AddDate(0, 0, daysToMonday)
	t, _ := atLocalTime(monday, "08:00", g.loc)
	return t
}

// AfterHoursMessage renders the localized closed-right-now copy naming the
// next opening.
func (g *Gate) AfterHoursMessage(lang models.Language, now time.Time) string {
	next := g.NextOpening(now)
	g.mu.RLock()
	defer g.mu.RUnlock()
	stamp := next.In(g.loc).Format("Monday, Jan 2, 3:04 PM")
	if lang == models.LangFR {
		return fmt.Sprintf("Nous sommes actuellement fermés. Nous répondrons le prochain jour ouvrable (%s). Si c'est une véritable urgence, appelez la ligne d'urgence maintenant.", stamp)
	}
	return fmt.Sprintf("We're currently closed. We'll respond on the next business day (%s). If this is a true emergency, please call the emergency line now.", stamp)
}

// BusinessHoursMessage renders the localized schedule summary.
func (g *Gate) BusinessHoursMessage(lang models.Language) string {
	if lang == models.LangFR {
		return "Nos heures d'affaires sont du lundi au vendredi de 8h00 à 16h00 (EST). Si c'est une véritable urgence, appelez la ligne d'urgence."
	}
	return "Our business hours are Monday-Friday 8:00 AM to 4:00 PM (EST). If this is a true emergency, please call the emergency line."
}

// EmergencyContactMessage renders the localized true-emergency contact line.
func (g *Gate) EmergencyContactMessage(lang models.Language) string {
	if lang == models.LangFR {
		return "Pour les vraies urgences (fuite active, feu/fumée, odeur de gaz, absence de chauffage en hiver), appelez immédiatement : " + EmergencyPhone
	}
	return "For true emergencies (active leak, fire/smoke, gas smell, no heat in winter), call immediately: " + EmergencyPhone
}

// parseMinutes converts an "HH:MM" (or "H:MM") string to minutes past
// midnight.
func parseMinutes(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return h*60 + m, nil
}

// atLocalTime builds the instant for the given day at "HH:MM" local time.
func atLocalTime(day time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	minutes, err := parseMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}
