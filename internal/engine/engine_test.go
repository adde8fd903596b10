package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/propdesk/tenantpipe/internal/catalog"
	"github.com/propdesk/tenantpipe/internal/hours"
	"github.com/propdesk/tenantpipe/internal/models"
	"github.com/propdesk/tenantpipe/internal/session"
)

type fakeDispatcher struct {
	payloads []models.ActionPayload
	result   models.DispatchResult
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, payload models.ActionPayload) models.DispatchResult {
	f.payloads = append(f.payloads, payload)
	res := f.result
	res.Endpoint = payload.Endpoint
	return res
}

// Wednesday 2026-09-02 10:00 in Toronto, inside business hours.
func openClock(t *testing.T) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at := time.Date(2026, 9, 2, 10, 0, 0, 0, loc)
	return func() time.Time { return at }
}

// Saturday 2026-09-05 10:00 in Toronto, outside business hours.
func closedClock(t *testing.T) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at := time.Date(2026, 9, 5, 10, 0, 0, 0, loc)
	return func() time.Time { return at }
}

func newTestEngine(t *testing.T, clock func() time.Time, opts ...Option) (*Engine, *session.MemoryStore, *fakeDispatcher) {
	t.Helper()
	store := session.NewMemoryStore()
	gate, err := hours.NewGate(hours.DefaultSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	disp := &fakeDispatcher{result: models.DispatchResult{Success: true}}
	all := append([]Option{WithDispatcher(disp), WithClock(clock)}, opts...)
	return New(store, catalog.Default(), gate, all...), store, disp
}

func seedSession(t *testing.T, store *session.MemoryStore, id string, state models.StateType, lang models.Language) {
	t.Helper()
	ctx := context.Background()
	sess, err := store.GetOrCreate(ctx, id, "u_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess.CurrentState = state
	sess.Language = lang
	if err := store.Update(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFreshTurnReturnsStartTemplate(t *testing.T) {
	eng, _, _ := newTestEngine(t, openClock(t))

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{Message: "Hello"})

	if resp.SessionID == "" || !strings.HasPrefix(resp.SessionID, "s_") {
		t.Errorf("expected generated session ID, got %q", resp.SessionID)
	}
	if resp.NextState != models.StateStart {
		t.Errorf("next state = %s, want start", resp.NextState)
	}
	if !strings.Contains(resp.Message, "Elite Immobilier") {
		t.Errorf("expected start template text, got %q", resp.Message)
	}
	want := []string{"maintenance", "billing", "lease", "emergency", "other"}
	if len(resp.QuickReplies) != len(want) {
		t.Fatalf("expected %d quick replies, got %d", len(want), len(resp.QuickReplies))
	}
	for i, v := range want {
		if resp.QuickReplies[i].Value != v {
			t.Errorf("reply %d = %q, want %q", i, resp.QuickReplies[i].Value, v)
		}
	}
}

func TestFreshTurnRoutesImmediately(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{Message: "maintenance"})

	if resp.NextState != models.StateMaintIntro {
		t.Fatalf("next state = %s, want maint_intro", resp.NextState)
	}
	if !resp.RequiresInput {
		t.Error("form start should require input")
	}
	sess, _ := store.Get(context.Background(), resp.SessionID)
	if sess == nil || sess.ActiveForm == nil || sess.ActiveForm.FormName != catalog.FormMaintenanceRequest {
		t.Error("first turn should have entered the maintenance form")
	}
}

func TestQuickReplyTransitions(t *testing.T) {
	tests := []struct {
		name  string
		state models.StateType
		lang  models.Language
		input string
		want  models.StateType
	}{
		{"value match", models.StateStart, models.LangEN, "lease", models.StateLeaseIntro},
		{"value match is case-insensitive", models.StateStart, models.LangEN, "LEASE", models.StateLeaseIntro},
		{"English label match", models.StateStart, models.LangEN, "Billing", models.StateBillingIntro},
		{"French label match", models.StateStart, models.LangFR, "Facturation", models.StateBillingIntro},
		{"nested menu", models.StateBillingIntro, models.LangEN, "pay", models.StateBillingPay},
		{"back to menu", models.StateEndOrMore, models.LangEN, "menu", models.StateMainMenu},
		{"lease submenu", models.StateLeaseIntro, models.LangEN, "renewal", models.StateLeaseRenewal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, store, _ := newTestEngine(t, openClock(t))
			seedSession(t, store, "s_q", tt.state, tt.lang)

			resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_q", Message: tt.input})
			if resp.NextState != tt.want {
				t.Errorf("next state = %s, want %s", resp.NextState, tt.want)
			}
		})
	}
}

func TestQuickReplyLabelMatchesSessionLanguageOnly(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_l", models.StateStart, models.LangEN)

	// The French label resolves nothing in an English session; the start
	// template is re-rendered unchanged.
	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_l", Message: "Autre"})
	if resp.NextState != models.StateStart {
		t.Errorf("next state = %s, want start unchanged", resp.NextState)
	}

	seedSession(t, store, "s_l2", models.StateStart, models.LangFR)
	resp = eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_l2", Message: "Autre"})
	if resp.NextState != models.StateMainMenu {
		t.Errorf("next state = %s, want main_menu for the French session", resp.NextState)
	}
}

func TestKeywordRoutingStartsForm(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_k", models.StateMainMenu, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_k", Message: "I have a parking problem"})

	if resp.NextState != models.StateParkingIntro {
		t.Fatalf("next state = %s, want parking_intro", resp.NextState)
	}
	if !resp.RequiresInput {
		t.Error("form start should require input")
	}
	sess, _ := store.Get(context.Background(), "s_k")
	if sess.ActiveForm == nil || sess.ActiveForm.FormName != catalog.FormParkingRequest {
		t.Errorf("expected active parking form, got %+v", sess.ActiveForm)
	}
}

func TestUnmatchedInputKeepsState(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_f", models.StateMainMenu, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_f", Message: "qwerty asdf"})

	if resp.NextState != models.StateMainMenu {
		t.Errorf("next state = %s, want main_menu unchanged", resp.NextState)
	}
	if len(resp.QuickReplies) == 0 {
		t.Error("re-rendered menu should offer its quick replies")
	}
}

func TestRepeatGreetingRerendersStart(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_hi", models.StateStart, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_hi", Message: "Hello again"})

	if resp.NextState != models.StateStart {
		t.Errorf("next state = %s, want start unchanged", resp.NextState)
	}
	if !strings.Contains(resp.Message, "Elite Immobilier") {
		t.Errorf("expected the start greeting, got %q", resp.Message)
	}
}

func TestFallbackRetriesAsMainMenu(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_r", models.StateFallback, models.LangEN)

	// "status" is a main_menu reply but not a fallback reply; the bounded
	// retry should still find it.
	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_r", Message: "status"})
	if resp.NextState != models.StateStatusIntro {
		t.Errorf("next state = %s, want status_intro", resp.NextState)
	}

	// Input that matches nothing stays on the state it was typed at.
	resp = eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_r", Message: "zzz"})
	if resp.NextState != models.StateStatusIntro {
		t.Errorf("next state = %s, want status_intro unchanged", resp.NextState)
	}
}

func TestFallbackStaysWhenRetryMisses(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_fb", models.StateFallback, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_fb", Message: "zzz"})

	if resp.NextState != models.StateFallback {
		t.Errorf("next state = %s, want fallback re-rendered", resp.NextState)
	}
	if !strings.Contains(resp.Message, "didn't catch that") {
		t.Errorf("expected the fallback copy, got %q", resp.Message)
	}
}

func TestEmergencyGateFrench(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_e", models.StateEmergencyGate, models.LangFR)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_e", Message: "oui"})

	if resp.NextState != models.StateEmergencyNow {
		t.Fatalf("next state = %s, want emergency_now", resp.NextState)
	}
	if !strings.Contains(resp.Message, hours.EmergencyPhone) {
		t.Errorf("expected emergency phone in response, got %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "urgence") {
		t.Errorf("expected French copy, got %q", resp.Message)
	}
	sess, _ := store.Get(context.Background(), "s_e")
	if sess.ActiveForm == nil || sess.ActiveForm.FormName != catalog.FormEmergencyAlert {
		t.Error("emergency form should be active")
	}
}

func TestEmergencyGateNoRoutesToMaintenance(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_n", models.StateEmergencyGate, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_n", Message: "n"})
	if resp.NextState != models.StateMaintIntro {
		t.Fatalf("next state = %s, want maint_intro", resp.NextState)
	}
	sess, _ := store.Get(context.Background(), "s_n")
	if sess.ActiveForm == nil || sess.ActiveForm.FormName != catalog.FormMaintenanceRequest {
		t.Error("maintenance form should be active")
	}
}

func TestHandoffInterceptedAfterHours(t *testing.T) {
	eng, store, _ := newTestEngine(t, closedClock(t))
	seedSession(t, store, "s_h", models.StateMainMenu, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_h", Message: "handoff"})

	if resp.NextState != models.StateEndOrMore {
		t.Errorf("next state = %s, want end_or_more", resp.NextState)
	}
	if !strings.Contains(resp.Message, "closed") || !strings.Contains(resp.Message, hours.EmergencyPhone) {
		t.Errorf("expected after-hours copy with emergency phone, got %q", resp.Message)
	}
	sess, _ := store.Get(context.Background(), "s_h")
	if sess.ActiveForm != nil {
		t.Error("no form should start after hours")
	}
}

func TestHandoffStartsFormDuringHours(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_o", models.StateMainMenu, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_o", Message: "handoff"})

	if resp.NextState != models.StateHandoffIntro {
		t.Errorf("next state = %s, want handoff_intro", resp.NextState)
	}
	sess, _ := store.Get(context.Background(), "s_o")
	if sess.ActiveForm == nil || sess.ActiveForm.FormName != catalog.FormHandoff {
		t.Error("handoff form should be active during business hours")
	}
}

func TestEndConversation(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_end", models.StateEndOrMore, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_end", Message: "end"})
	if resp.NextState != models.StateStart {
		t.Errorf("next state = %s, want start", resp.NextState)
	}
	if !resp.EndConversation {
		t.Error("expected endConversation flag")
	}
}

func TestLanguageUpgradeDuringTurn(t *testing.T) {
	eng, store, _ := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_fr", models.StateStart, models.LangEN)

	resp := eng.ProcessTurn(context.Background(), models.TurnRequest{SessionID: "s_fr", Message: "je veux de l'aide avec mon bail"})

	if resp.NextState != models.StateLeaseIntro {
		t.Fatalf("next state = %s, want lease_intro", resp.NextState)
	}
	if !strings.Contains(resp.Message, "bail") {
		t.Errorf("expected French lease copy, got %q", resp.Message)
	}
	sess, _ := store.Get(context.Background(), "s_fr")
	if sess.Language != models.LangFR {
		t.Error("session should be upgraded to French")
	}
}

var maintenanceAnswers = []string{
	"yes",                              // confirm_non_emergency
	"101",                              // unit
	"",                                 // building_address (optional)
	"heating",                          // issue_type
	"The heating is completely broken", // description
	"yes",                              // access_permission
	"mornings",                         // best_time
	"",                                 // pets_notes (optional)
	"514-555-0101",                     // contact_phone
	"",                                 // contact_email (optional)
	"phone",                            // preferred_contact
}

func TestMaintenanceFormCompletion(t *testing.T) {
	eng, store, disp := newTestEngine(t, openClock(t))
	disp.result = models.DispatchResult{Success: true, WorkOrder: &models.WorkOrderReceipt{WorkOrderID: "WO-7", Priority: "urgent"}}
	seedSession(t, store, "s_m", models.StateMainMenu, models.LangEN)

	ctx := context.Background()
	resp := eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_m", Message: "maintenance"})
	if resp.NextState != models.StateMaintIntro {
		t.Fatalf("next state = %s, want maint_intro", resp.NextState)
	}

	for _, answer := range maintenanceAnswers {
		resp = eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_m", Message: answer})
	}

	if resp.NextState != models.StateEndOrMore {
		t.Fatalf("final state = %s, want end_or_more", resp.NextState)
	}
	if !strings.Contains(resp.Message, "WO #WO-7") {
		t.Errorf("expected interpolated work-order ID, got %q", resp.Message)
	}

	sess, _ := store.Get(ctx, "s_m")
	if sess.ActiveForm != nil {
		t.Error("active form should be cleared on completion")
	}
	if sess.CollectedData["issue_type"] != "heating" || sess.CollectedData["unit"] != "101" {
		t.Errorf("collected data not merged: %+v", sess.CollectedData)
	}

	if len(disp.payloads) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(disp.payloads))
	}
	payload := disp.payloads[0]
	if payload.Endpoint != models.EndpointWorkOrders || payload.Method != "POST" {
		t.Errorf("payload target = %s %s", payload.Method, payload.Endpoint)
	}
	if payload.Data["issue_type"] != "heating" {
		t.Errorf("payload issue_type = %v", payload.Data["issue_type"])
	}
	if payload.Data["sessionId"] != "s_m" || payload.Data["userId"] != "u_1" {
		t.Error("payload should carry session and user IDs")
	}
	if _, ok := payload.Data["timestamp"].(string); !ok {
		t.Error("payload should carry an ISO timestamp")
	}
	if payload.Data["confirm_non_emergency"] != true {
		t.Errorf("boolean slot stored as %v", payload.Data["confirm_non_emergency"])
	}
	// Skipped optionals still appear, as empty strings.
	if v, ok := payload.Data["building_address"]; !ok || v != "" {
		t.Errorf("building_address = (%v, %v), want empty string present", v, ok)
	}
}

func TestInvalidSlotInputRepromptsSameSlot(t *testing.T) {
	eng, store, disp := newTestEngine(t, openClock(t))
	seedSession(t, store, "s_v", models.StateMainMenu, models.LangEN)

	ctx := context.Background()
	eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_v", Message: "maintenance"})

	// An invalid boolean answer must not advance the slot index.
	resp := eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_v", Message: "maybe"})
	if !strings.Contains(resp.Message, "Yes or No") {
		t.Errorf("expected boolean error, got %q", resp.Message)
	}
	sess, _ := store.Get(ctx, "s_v")
	if sess.ActiveForm == nil || sess.ActiveForm.SlotIndex != 0 {
		t.Errorf("slot index should stay at 0, got %+v", sess.ActiveForm)
	}
	if len(disp.payloads) != 0 {
		t.Error("nothing should dispatch on a validation error")
	}
}

func TestDispatchFailureKeepsConfirmation(t *testing.T) {
	eng, store, disp := newTestEngine(t, openClock(t))
	disp.result = models.Failure("", models.ErrDispatch)
	seedSession(t, store, "s_d", models.StateMainMenu, models.LangEN)

	ctx := context.Background()
	eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_d", Message: "maintenance"})
	var resp models.TurnResponse
	for _, answer := range maintenanceAnswers {
		resp = eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_d", Message: answer})
	}

	if resp.NextState != models.StateEndOrMore {
		t.Errorf("state = %s, want end_or_more despite failed dispatch", resp.NextState)
	}
	// The confirmation is still shown with its placeholder literal.
	if !strings.Contains(resp.Message, "{{ticket}}") {
		t.Errorf("expected literal placeholder after failed dispatch, got %q", resp.Message)
	}
	sess, _ := store.Get(ctx, "s_d")
	if sess.ActiveForm != nil {
		t.Error("form state should be committed before dispatch")
	}
}

func TestBalanceInquiryInterpolation(t *testing.T) {
	eng, store, disp := newTestEngine(t, openClock(t))
	disp.result = models.DispatchResult{Success: true, Balance: &models.BalanceReceipt{Balance: 750.40, AsOfDate: "2026-09-01"}}
	seedSession(t, store, "s_b", models.StateBillingIntro, models.LangEN)

	ctx := context.Background()
	resp := eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_b", Message: "balance"})
	if resp.NextState != models.StateBillingBalance {
		t.Fatalf("next state = %s, want billing_balance", resp.NextState)
	}

	resp = eng.ProcessTurn(ctx, models.TurnRequest{SessionID: "s_b", Message: "101"})
	if !strings.Contains(resp.Message, "$750.40") || !strings.Contains(resp.Message, "2026-09-01") {
		t.Errorf("expected interpolated balance, got %q", resp.Message)
	}
}
