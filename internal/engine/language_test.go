package engine

import (
	"testing"

	"github.com/propdesk/tenantpipe/internal/models"
)

func TestLooksFrench(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Bonjour, je suis un locataire", true},
		{"merci pour votre aide", true},
		{"en français svp", true},
		{"francais", true},
		{"Hello, I need maintenance", false},
		{"bonjour", false},
		{"I am sure about my project", false},
		{"", false},
		{"OUI NON", true},
	}
	for _, tt := range tests {
		if got := looksFrench(tt.input); got != tt.want {
			t.Errorf("looksFrench(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLanguageUpgradeIsOneWay(t *testing.T) {
	sess := models.NewSession("s_1", "")

	applyLanguageHeuristic(sess, "hello there")
	if sess.Language != models.LangEN {
		t.Fatalf("language = %s, want en", sess.Language)
	}

	applyLanguageHeuristic(sess, "bonjour je veux de l'aide")
	if sess.Language != models.LangFR {
		t.Fatalf("language = %s, want fr", sess.Language)
	}

	applyLanguageHeuristic(sess, "actually let's switch back to English please")
	if sess.Language != models.LangFR {
		t.Error("French session must never revert to English")
	}
}
