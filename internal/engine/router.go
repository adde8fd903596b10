package engine

import (
	"strings"

	"github.com/propdesk/tenantpipe/internal/catalog"
	"github.com/propdesk/tenantpipe/internal/models"
)

// formForState maps the states that immediately start a form instead of
// rendering their plain template.
var formForState = map[models.StateType]string{
	models.StateMaintIntro:     catalog.FormMaintenanceRequest,
	models.StateEmergencyNow:   catalog.FormEmergencyAlert,
	models.StateBillingFees:    catalog.FormBillingFees,
	models.StateBillingBalance: catalog.FormBalanceInquiry,
	models.StateLeaseTransfer:  catalog.FormLeaseTransfer,
	models.StateLeaseOccupant:  catalog.FormLeaseOccupant,
	models.StateParkingIntro:   catalog.FormParkingRequest,
	models.StateMoveInIntro:    catalog.FormMoveIn,
	models.StateMoveOutIntro:   catalog.FormMoveOut,
	models.StateNoiseIntro:     catalog.FormNoiseComplaint,
	models.StatePortalIntro:    catalog.FormPortalHelp,
	models.StateDocsIntro:      catalog.FormDocumentRequest,
	models.StateHandoffIntro:   catalog.FormHandoff,
}

// menuRoute pairs a curated keyword list with its target state. Routes are
// checked in order; the first list with a hit wins.
type menuRoute struct {
	words []string
	next  models.StateType
}

var menuRoutes = []menuRoute{
	{words: []string{"emergency", "urgence", "urgent"}, next: models.StateEmergencyGate},
	{words: []string{"maintenance", "entretien", "repair", "réparation", "broken", "brisé"}, next: models.StateMaintIntro},
	{words: []string{"billing", "facturation", "payment", "paiement", "rent", "loyer", "balance", "solde"}, next: models.StateBillingIntro},
	{words: []string{"lease", "bail"}, next: models.StateLeaseIntro},
	{words: []string{"parking", "stationnement"}, next: models.StateParkingIntro},
	{words: []string{"internet", "wifi", "cable", "câble"}, next: models.StateInternetIntro},
	{words: []string{"human", "person", "agent", "humain", "personne", "quelqu'un"}, next: models.StateHandoffIntro},
}

var (
	yesTokens = map[string]bool{"yes": true, "y": true, "oui": true, "o": true}
	noTokens  = map[string]bool{"no": true, "n": true, "non": true}
)

// resolveNextState applies quick-reply matching and per-state keyword
// heuristics for one turn. Unresolved input yields "" and the caller
// re-renders the unchanged state. A session parked in fallback retries
// once against main_menu rules and never deeper.
func (e *Engine) resolveNextState(state models.StateType, lang models.Language, input string) (models.StateType, error) {
	next, err := e.resolveOnce(state, lang, input)
	if err != nil || next != "" {
		return next, err
	}
	if state == models.StateFallback {
		return e.resolveOnce(models.StateMainMenu, lang, input)
	}
	return "", nil
}

// resolveOnce performs one bounded lookup for a single state: quick replies
// first, then that state's keyword heuristics. Empty result means no match.
func (e *Engine) resolveOnce(state models.StateType, lang models.Language, input string) (models.StateType, error) {
	entry, err := e.catalog.Template(state)
	if err != nil {
		return "", err
	}

	norm := strings.ToLower(strings.TrimSpace(input))
	for _, qr := range entry.QuickReplies {
		if qr.NextState == "" {
			continue
		}
		if norm == strings.ToLower(qr.Value) ||
			norm == strings.ToLower(qr.Label.Get(lang)) {
			return qr.NextState, nil
		}
	}

	switch state {
	case models.StateStart, models.StateMainMenu:
		for _, route := range menuRoutes {
			for _, word := range route.words {
				if strings.Contains(norm, word) {
					return route.next, nil
				}
			}
		}
	case models.StateEmergencyGate:
		if yesTokens[norm] {
			return models.StateEmergencyNow, nil
		}
		if noTokens[norm] {
			return models.StateMaintIntro, nil
		}
	}
	return "", nil
}
