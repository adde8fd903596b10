package engine

import (
	"strings"

	"github.com/propdesk/tenantpipe/internal/models"
)

// frenchMarkers are curated words whose presence suggests French input.
// Matching is on whole tokens of the lowercased message.
var frenchMarkers = map[string]struct{}{
	"bonjour": {}, "salut": {}, "merci": {}, "oui": {}, "non": {},
	"je": {}, "suis": {}, "avec": {}, "pour": {}, "dans": {}, "sur": {},
	"une": {}, "des": {}, "les": {}, "mon": {}, "ma": {}, "mes": {},
	"votre": {}, "vos": {}, "entretien": {}, "facturation": {}, "bail": {},
	"urgence": {}, "stationnement": {},
}

// looksFrench reports whether the input reads as French: at least two
// distinct markers, or an explicit mention of "français".
func looksFrench(input string) bool {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "français") || strings.Contains(lower, "francais") {
		return true
	}
	seen := map[string]struct{}{}
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !(r == '\'' || r == '-' || (r >= 'a' && r <= 'z') || r >= 0x80)
	}) {
		if _, ok := frenchMarkers[tok]; ok {
			seen[tok] = struct{}{}
			if len(seen) >= 2 {
				return true
			}
		}
	}
	return false
}

// applyLanguageHeuristic upgrades the session to French when the input
// looks French. The switch is one-directional: once French, the session
// never reverts to English here.
func applyLanguageHeuristic(sess *models.Session, input string) {
	if sess.Language == models.LangEN && looksFrench(input) {
		sess.Language = models.LangFR
	}
}
