// Package models defines the action dispatch contracts for tenantpipe.
package models

// Logical endpoint identifiers for the downstream action catalog.
const (
	EndpointWorkOrders     = "/miq/workorders"
	EndpointEmergencyAlert = "/alerts/emergency"
	EndpointBillingCase    = "/admin/billing/case"
	EndpointLedger         = "/admin/ledger"
	EndpointLeaseTransfer  = "/admin/lease/transfer"
	EndpointLeaseOccupant  = "/admin/lease/occupant"
	EndpointParkingAssign  = "/admin/parking/assign"
	EndpointMoveIn         = "/ops/movein/appointment"
	EndpointMoveOut        = "/ops/moveout/appointment"
	EndpointNoise          = "/service/noise"
	EndpointPortalHelp     = "/admin/portal/help"
	EndpointDocuments      = "/admin/docs/generate"
	EndpointHandoff        = "/handoff/create"
)

// ActionPayload is the normalized request handed to the dispatcher. It is
// produced only by form completion or explicit triggers such as the
// emergency alert.
type ActionPayload struct {
	Endpoint string            `json:"endpoint"`
	Method   string            `json:"method"`
	Data     map[string]any    `json:"data,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// Receipt variants, one per catalog endpoint. Each carries the identifier
// the downstream system assigned plus any endpoint-specific fields.

// WorkOrderReceipt is returned by the work-order endpoint.
type WorkOrderReceipt struct {
	WorkOrderID string `json:"work_order_id"`
	Priority    string `json:"priority"`
}

// EmergencyReceipt is returned by the emergency-alert endpoint.
type EmergencyReceipt struct {
	AlertID string `json:"alert_id"`
}

// BillingCaseReceipt is returned by the billing-case endpoint.
type BillingCaseReceipt struct {
	CaseID string `json:"case_id"`
}

// BalanceReceipt is returned by the tenant-ledger lookup.
type BalanceReceipt struct {
	Balance  float64 `json:"balance"`
	AsOfDate string  `json:"as_of_date"`
}

// LeaseTransferReceipt is returned by the lease-transfer endpoint.
type LeaseTransferReceipt struct {
	TransferID string `json:"transfer_id"`
}

// LeaseOccupantReceipt is returned by the lease-occupant endpoint.
type LeaseOccupantReceipt struct {
	OccupantID string `json:"occupant_id"`
}

// ParkingReceipt is returned by the parking-assignment endpoint.
type ParkingReceipt struct {
	AssignmentID string `json:"assignment_id"`
	Waitlisted   bool   `json:"waitlisted"`
}

// AppointmentReceipt is returned by the move-in and move-out endpoints.
type AppointmentReceipt struct {
	AppointmentID string `json:"appointment_id"`
}

// NoiseReceipt is returned by the noise-complaint endpoint.
type NoiseReceipt struct {
	ComplaintID string `json:"complaint_id"`
}

// PortalHelpReceipt is returned by the portal-help endpoint.
type PortalHelpReceipt struct {
	HelpID string `json:"help_id"`
}

// DocumentReceipt is returned by the document-generation endpoint.
type DocumentReceipt struct {
	DocumentID string `json:"document_id"`
}

// HandoffReceipt is returned by the handoff endpoint.
type HandoffReceipt struct {
	HandoffID  string `json:"handoff_id"`
	Priority   string `json:"priority"`
	Department string `json:"department"`
}

// DispatchResult is the closed tagged result of one dispatch. On success
// exactly one variant pointer is set (or Generic for unrecognized
// endpoints); on failure only Endpoint and Err carry information. Dispatch
// failures never abort the conversation.
type DispatchResult struct {
	Endpoint string `json:"endpoint"`
	Success  bool   `json:"success"`
	Err      string `json:"error,omitempty"`

	WorkOrder      *WorkOrderReceipt     `json:"work_order,omitempty"`
	EmergencyAlert *EmergencyReceipt     `json:"emergency_alert,omitempty"`
	BillingCase    *BillingCaseReceipt   `json:"billing_case,omitempty"`
	Balance        *BalanceReceipt       `json:"balance,omitempty"`
	LeaseTransfer  *LeaseTransferReceipt `json:"lease_transfer,omitempty"`
	LeaseOccupant  *LeaseOccupantReceipt `json:"lease_occupant,omitempty"`
	Parking        *ParkingReceipt       `json:"parking,omitempty"`
	Appointment    *AppointmentReceipt   `json:"appointment,omitempty"`
	Noise          *NoiseReceipt         `json:"noise,omitempty"`
	PortalHelp     *PortalHelpReceipt    `json:"portal_help,omitempty"`
	Document       *DocumentReceipt      `json:"document,omitempty"`
	Handoff        *HandoffReceipt       `json:"handoff,omitempty"`
	Generic        map[string]any        `json:"generic,omitempty"`
}

// Failure builds a failed result for the given endpoint.
func Failure(endpoint string, err error) DispatchResult {
	return DispatchResult{Endpoint: endpoint, Success: false, Err: err.Error()}
}

// TicketID returns the ticket/case identifier carried by whichever variant
// is set, or "" when the result has none.
func (r DispatchResult) TicketID() string {
	switch {
	case r.WorkOrder != nil:
		return r.WorkOrder.WorkOrderID
	case r.EmergencyAlert != nil:
		return r.EmergencyAlert.AlertID
	case r.BillingCase != nil:
		return r.BillingCase.CaseID
	case r.LeaseTransfer != nil:
		return r.LeaseTransfer.TransferID
	case r.LeaseOccupant != nil:
		return r.LeaseOccupant.OccupantID
	case r.Parking != nil:
		return r.Parking.AssignmentID
	case r.Appointment != nil:
		return r.Appointment.AppointmentID
	case r.Noise != nil:
		return r.Noise.ComplaintID
	case r.PortalHelp != nil:
		return r.PortalHelp.HelpID
	case r.Document != nil:
		return r.Document.DocumentID
	case r.Handoff != nil:
		return r.Handoff.HandoffID
	}
	return ""
}
