// Package models defines the core data structures for tenantpipe.
//
// It includes the conversation session, slot-filling form definitions, the
// bilingual template catalog types, and the action payload/result contracts
// shared across modules.
package models

import (
	"errors"
	"time"
)

// Language identifies one of the two supported conversation languages.
type Language string

const (
	// LangEN selects English copy.
	LangEN Language = "en"
	// LangFR selects French copy.
	LangFR Language = "fr"
)

// IsValidLanguage checks if the given language is supported.
func IsValidLanguage(l Language) bool {
	return l == LangEN || l == LangFR
}

// Validation constants shared by the form engine.
const (
	// MaxInputLength caps raw user input before any slot validation runs.
	MaxInputLength = 2000
	// MaxSlotCount caps the number of slots a form definition may carry.
	MaxSlotCount = 25
)

// Error variables for the failure taxonomy. Validation errors are handled
// inside the form engine, configuration errors indicate a catalog/engine
// mismatch, dispatch errors cover downstream call failures, and session
// errors are tolerated by lazily recreating state.
var (
	ErrUnknownState   = errors.New("unknown conversation state")
	ErrUnknownForm    = errors.New("unknown form definition")
	ErrNoActiveForm   = errors.New("no active form on session")
	ErrSlotOutOfRange = errors.New("active form slot index out of range")
	ErrEmptyForm      = errors.New("form definition has no slots")
	ErrSessionClosed  = errors.New("session store is closed")
	ErrDispatch       = errors.New("action dispatch failed")
)

// Localized holds one string in both supported languages.
type Localized struct {
	EN string `json:"en"`
	FR string `json:"fr"`
}

// Get returns the string for the given language, defaulting to English.
func (l Localized) Get(lang Language) string {
	if lang == LangFR {
		return l.FR
	}
	return l.EN
}

// QuickReply is a tappable/typable shortcut presented with a prompt. Value is
// matched case-insensitively against user input, as is the localized label.
// NextState, when set, declares the deterministic transition for the reply.
type QuickReply struct {
	Label     Localized `json:"label"`
	Value     string    `json:"value"`
	NextState StateType `json:"next_state,omitempty"`
}

// ReplyOption is the localized wire form of a quick reply.
type ReplyOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TemplateEntry is the per-state bilingual prompt plus presentation hints.
type TemplateEntry struct {
	Text          Localized    `json:"text"`
	QuickReplies  []QuickReply `json:"quick_replies,omitempty"`
	RequiresInput bool         `json:"requires_input,omitempty"`
	InputType     string       `json:"input_type,omitempty"`
}

// SlotType defines how a slot answer is validated and stored.
type SlotType string

const (
	SlotTypeText    SlotType = "text"
	SlotTypeEmail   SlotType = "email"
	SlotTypePhone   SlotType = "phone"
	SlotTypeSelect  SlotType = "select"
	SlotTypeBoolean SlotType = "boolean"
	SlotTypeDate    SlotType = "date"
)

// IsValidSlotType checks if the given slot type is supported.
func IsValidSlotType(t SlotType) bool {
	switch t {
	case SlotTypeText, SlotTypeEmail, SlotTypePhone, SlotTypeSelect, SlotTypeBoolean, SlotTypeDate:
		return true
	default:
		return false
	}
}

// SlotOption is one enumerated choice for a select slot.
type SlotOption struct {
	Value string    `json:"value"`
	Label Localized `json:"label"`
}

// SlotValidation carries optional pattern and length bounds for a slot.
// Zero values mean "no constraint".
type SlotValidation struct {
	Pattern   string `json:"pattern,omitempty"`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

// SlotDefinition is one typed field within a form. Name keys the collected
// data; Label is the prompt shown when the slot is asked.
type SlotDefinition struct {
	Name       string         `json:"name"`
	Type       SlotType       `json:"type"`
	Required   bool           `json:"required"`
	Label      Localized      `json:"label"`
	Options    []SlotOption   `json:"options,omitempty"`
	Validation SlotValidation `json:"validation,omitempty"`
}

// FormDefinition is an immutable ordered slot list with its submit action
// and bilingual confirmation message.
type FormDefinition struct {
	Name                string           `json:"name"`
	Slots               []SlotDefinition `json:"slots"`
	SubmitAction        string           `json:"submit_action"`
	ConfirmationMessage Localized        `json:"confirmation_message"`
}

// ActiveForm tracks in-progress slot filling on a session. Data is scoped to
// this form instance and merged into the session's collected data only on
// completion. Invariant: 0 <= SlotIndex < len(form.Slots).
type ActiveForm struct {
	FormName  string         `json:"form_name"`
	SlotIndex int            `json:"slot_index"`
	Data      map[string]any `json:"data"`
}

// Session is the per-conversation mutable state, keyed by an opaque ID.
// CollectedData is a flat namespace across every form completed in the
// session; later forms overwrite same-named keys.
type Session struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	CurrentState  StateType      `json:"current_state"`
	Language      Language       `json:"language"`
	Context       map[string]any `json:"context"`
	CollectedData map[string]any `json:"collected_data"`
	ActiveForm    *ActiveForm    `json:"active_form,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewSession returns a fresh session in the start state with English copy.
func NewSession(id, userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            id,
		UserID:        userID,
		CurrentState:  StateStart,
		Language:      LangEN,
		Context:       make(map[string]any),
		CollectedData: make(map[string]any),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy so callers can mutate freely before Update.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Context = cloneMap(s.Context)
	cp.CollectedData = cloneMap(s.CollectedData)
	if s.ActiveForm != nil {
		af := *s.ActiveForm
		af.Data = cloneMap(s.ActiveForm.Data)
		cp.ActiveForm = &af
	}
	return &cp
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
