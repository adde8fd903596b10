package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

var (
	boolYesTokens = map[string]bool{"yes": true, "y": true, "true": true, "1": true, "oui": true, "o": true, "vrai": true}
	boolNoTokens  = map[string]bool{"no": true, "n": true, "false": true, "0": true, "non": true, "faux": true}

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var formErrors = map[string]models.Localized{
	"required":  {EN: "This field is required.", FR: "Ce champ est requis."},
	"email":     {EN: "Please enter a valid email address.", FR: "Veuillez entrer une adresse courriel valide."},
	"phone":     {EN: "Please enter a valid phone number.", FR: "Veuillez entrer un numéro de téléphone valide."},
	"boolean":   {EN: "Please answer Yes or No.", FR: "Veuillez répondre Oui ou Non."},
	"select":    {EN: "Please choose one of the listed options.", FR: "Veuillez choisir une des options proposées."},
	"minLength": {EN: "Please provide at least %d characters.", FR: "Veuillez fournir au moins %d caractères."},
	"maxLength": {EN: "Please keep your answer under %d characters.", FR: "Veuillez limiter votre réponse à %d caractères."},
}

func formError(key string, lang models.Language, args ...any) string {
	msg := formErrors[key].Get(lang)
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// startForm attaches a fresh active-form record at slot 0 and prompts for
// the first slot.
func (e *Engine) startForm(sess *models.Session, formName string) (turnResult, error) {
	def, err := e.catalog.Form(formName)
	if err != nil {
		return turnResult{}, err
	}
	sess.ActiveForm = &models.ActiveForm{
		FormName: formName,
		Data:     make(map[string]any),
	}
	return slotTurn(def.Slots[0], sess.Language), nil
}

// handleFormInput validates one slot answer. Invalid input re-prompts the
// same slot; valid input advances, and answering the last slot completes
// the form and yields its action payload.
func (e *Engine) handleFormInput(sess *models.Session, input string) (turnResult, error) {
	af := sess.ActiveForm
	if af == nil {
		return turnResult{}, models.ErrNoActiveForm
	}
	def, err := e.catalog.Form(af.FormName)
	if err != nil {
		return turnResult{}, err
	}
	if af.SlotIndex < 0 || af.SlotIndex >= len(def.Slots) {
		return turnResult{}, fmt.Errorf("form %q index %d: %w", af.FormName, af.SlotIndex, models.ErrSlotOutOfRange)
	}

	slot := def.Slots[af.SlotIndex]
	value, errMsg := validateSlot(slot, input, sess.Language)
	if errMsg != "" {
		res := slotTurn(slot, sess.Language)
		res.message = errMsg
		return res, nil
	}
	af.Data[slot.Name] = value
	af.SlotIndex++

	if af.SlotIndex < len(def.Slots) {
		return slotTurn(def.Slots[af.SlotIndex], sess.Language), nil
	}
	return e.completeForm(sess, def), nil
}

// completeForm merges the form data into the session, clears the active
// form, and builds the dispatch payload. Same-named keys from earlier forms
// are overwritten.
func (e *Engine) completeForm(sess *models.Session, def models.FormDefinition) turnResult {
	data := make(map[string]any, len(sess.ActiveForm.Data)+3)
	for k, v := range sess.ActiveForm.Data {
		sess.CollectedData[k] = v
		data[k] = v
	}
	data["sessionId"] = sess.ID
	data["userId"] = sess.UserID
	data["timestamp"] = e.now().UTC().Format(time.RFC3339)

	sess.ActiveForm = nil
	sess.CurrentState = models.StateEndOrMore

	return turnResult{
		message: def.ConfirmationMessage.Get(sess.Language),
		action: &models.ActionPayload{
			Endpoint: def.SubmitAction,
			Method:   "POST",
			Data:     data,
		},
	}
}

// slotTurn builds the prompt and generated quick replies for one slot.
func slotTurn(slot models.SlotDefinition, lang models.Language) turnResult {
	var replies []models.ReplyOption
	switch slot.Type {
	case models.SlotTypeBoolean:
		if lang == models.LangFR {
			replies = []models.ReplyOption{{Label: "Oui", Value: "yes"}, {Label: "Non", Value: "no"}}
		} else {
			replies = []models.ReplyOption{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}
		}
	case models.SlotTypeSelect:
		for _, opt := range slot.Options {
			replies = append(replies, models.ReplyOption{Label: opt.Label.Get(lang), Value: opt.Value})
		}
	}

	prompt := slot.Label.Get(lang)
	if len(slot.Options) > 0 {
		var b strings.Builder
		b.WriteString(prompt)
		for _, opt := range slot.Options {
			b.WriteString("\n• ")
			b.WriteString(opt.Label.Get(lang))
		}
		prompt = b.String()
	}

	return turnResult{
		message:       prompt,
		replies:       replies,
		requiresInput: true,
		inputType:     string(slot.Type),
	}
}

// validateSlot runs the validation ladder for one answer. It returns the
// value to store ("" for an empty optional slot) or a localized error
// message when the input is rejected.
func validateSlot(slot models.SlotDefinition, input string, lang models.Language) (any, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if slot.Required {
			return nil, formError("required", lang)
		}
		// Skipped optional slots still appear in the payload, as "".
		return "", ""
	}
	if len(trimmed) > models.MaxInputLength {
		return nil, formError("maxLength", lang, models.MaxInputLength)
	}

	switch slot.Type {
	case models.SlotTypeBoolean:
		norm := strings.ToLower(trimmed)
		if boolYesTokens[norm] {
			return true, ""
		}
		if boolNoTokens[norm] {
			return false, ""
		}
		return nil, formError("boolean", lang)

	case models.SlotTypeSelect:
		norm := strings.ToLower(trimmed)
		for _, opt := range slot.Options {
			if norm == strings.ToLower(opt.Value) || norm == strings.ToLower(opt.Label.Get(lang)) {
				return opt.Value, ""
			}
		}
		return nil, formError("select", lang)

	case models.SlotTypeEmail:
		if !emailPattern.MatchString(trimmed) {
			return nil, formError("email", lang)
		}

	case models.SlotTypePhone:
		if slot.Validation.Pattern != "" && !matchPattern(slot.Validation.Pattern, trimmed) {
			return nil, formError("phone", lang)
		}
	}

	if slot.Validation.MinLength > 0 && len(trimmed) < slot.Validation.MinLength {
		return nil, formError("minLength", lang, slot.Validation.MinLength)
	}
	if slot.Validation.MaxLength > 0 && len(trimmed) > slot.Validation.MaxLength {
		return nil, formError("maxLength", lang, slot.Validation.MaxLength)
	}
	return trimmed, ""
}

var patternCache sync.Map

// matchPattern compiles and caches slot validation patterns. An
// uncompilable pattern is logged and treated as a pass.
func matchPattern(pattern, input string) bool {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp).MatchString(input)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		slog.Error("matchPattern: invalid slot pattern", "pattern", pattern, "error", err)
		return true
	}
	patternCache.Store(pattern, re)
	return re.MatchString(input)
}
