// Package models defines the dialogue state graph for tenantpipe.
package models

// StateType names a node in the dialogue graph. Every state must have a
// template catalog entry; the router only ever transitions between members
// of this set.
type StateType string

const (
	StateStart            StateType = "start"
	StateMainMenu         StateType = "main_menu"
	StateEmergencyGate    StateType = "emergency_gate"
	StateEmergencyNow     StateType = "emergency_now"
	StateMaintIntro       StateType = "maint_intro"
	StateBillingIntro     StateType = "billing_intro"
	StateBillingPay       StateType = "billing_pay"
	StateBillingFees      StateType = "billing_fees"
	StateBillingBalance   StateType = "billing_balance"
	StateLeaseIntro       StateType = "lease_intro"
	StateLeaseTransfer    StateType = "lease_transfer"
	StateLeaseOccupant    StateType = "lease_occupant"
	StateLeaseRenewal     StateType = "lease_renewal"
	StateLeaseTermination StateType = "lease_termination"
	StateMoveInIntro      StateType = "move_in_intro"
	StateMoveOutIntro     StateType = "move_out_intro"
	StateParkingIntro     StateType = "parking_intro"
	StateNoiseIntro       StateType = "noise_intro"
	StateInternetIntro    StateType = "internet_intro"
	StatePortalIntro      StateType = "portal_intro"
	StateStatusIntro      StateType = "status_intro"
	StateStatusWithWO     StateType = "status_with_wo"
	StateStatusByUnit     StateType = "status_by_unit"
	StateDocsIntro        StateType = "docs_intro"
	StateHandoffIntro     StateType = "handoff_intro"
	StateFallback         StateType = "fallback"
	StateEndOrMore        StateType = "end_or_more"
)

// AllStates lists every state in the dialogue graph.
var AllStates = []StateType{
	StateStart, StateMainMenu, StateEmergencyGate, StateEmergencyNow,
	StateMaintIntro, StateBillingIntro, StateBillingPay, StateBillingFees,
	StateBillingBalance, StateLeaseIntro, StateLeaseTransfer,
	StateLeaseOccupant, StateLeaseRenewal, StateLeaseTermination,
	StateMoveInIntro, StateMoveOutIntro, StateParkingIntro, StateNoiseIntro,
	StateInternetIntro, StatePortalIntro, StateStatusIntro, StateStatusWithWO,
	StateStatusByUnit, StateDocsIntro, StateHandoffIntro, StateFallback,
	StateEndOrMore,
}

var stateSet = func() map[StateType]struct{} {
	m := make(map[StateType]struct{}, len(AllStates))
	for _, s := range AllStates {
		m[s] = struct{}{}
	}
	return m
}()

// IsValidState checks if the given state belongs to the dialogue graph.
func IsValidState(s StateType) bool {
	_, ok := stateSet[s]
	return ok
}
