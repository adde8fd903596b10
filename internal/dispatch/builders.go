package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

// actionBuilder enriches the outgoing data with derived fields and decodes
// the endpoint's typed receipt.
type actionBuilder struct {
	method string
	enrich func(now time.Time, data map[string]any)
	query  func(data map[string]any) url.Values
	decode func(body []byte, res *models.DispatchResult) error
}

func decodeInto[T any](assign func(*models.DispatchResult, *T)) func([]byte, *models.DispatchResult) error {
	return func(body []byte, res *models.DispatchResult) error {
		receipt := new(T)
		if len(body) > 0 {
			if err := json.Unmarshal(body, receipt); err != nil {
				return err
			}
		}
		assign(res, receipt)
		return nil
	}
}

var builders = map[string]actionBuilder{
	models.EndpointWorkOrders: {
		enrich: func(now time.Time, data map[string]any) {
			data["priority"] = WorkOrderPriority(stringField(data, "issue_type"))
			data["source"] = "chatbot"
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.WorkOrderReceipt) { res.WorkOrder = r }),
	},

	models.EndpointEmergencyAlert: {
		enrich: func(now time.Time, data map[string]any) {
			data["severity"] = "critical"
			data["source"] = "chatbot"
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.EmergencyReceipt) { res.EmergencyAlert = r }),
	},

	models.EndpointBillingCase: {
		enrich: func(now time.Time, data map[string]any) {
			data["case_type"] = "fee_inquiry"
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.BillingCaseReceipt) { res.BillingCase = r }),
	},

	models.EndpointLedger: {
		method: http.MethodGet,
		query: func(data map[string]any) url.Values {
			q := url.Values{}
			q.Set("unit", stringField(data, "unit"))
			if sid := stringField(data, "sessionId"); sid != "" {
				q.Set("sessionId", sid)
			}
			return q
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.BalanceReceipt) { res.Balance = r }),
	},

	models.EndpointLeaseTransfer: {
		enrich: func(now time.Time, data map[string]any) {
			data["request_type"] = "transfer"
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.LeaseTransferReceipt) { res.LeaseTransfer = r }),
	},

	models.EndpointLeaseOccupant: {
		enrich: func(now time.Time, data map[string]any) {
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.LeaseOccupantReceipt) { res.LeaseOccupant = r }),
	},

	models.EndpointParkingAssign: {
		enrich: func(now time.Time, data map[string]any) {
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.ParkingReceipt) { res.Parking = r }),
	},

	models.EndpointMoveIn: {
		enrich: func(now time.Time, data map[string]any) {
			data["appointment_type"] = "move_in"
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.AppointmentReceipt) { res.Appointment = r }),
	},

	models.EndpointMoveOut: {
		enrich: func(now time.Time, data map[string]any) {
			data["appointment_type"] = "move_out"
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.AppointmentReceipt) { res.Appointment = r }),
	},

	models.EndpointNoise: {
		enrich: func(now time.Time, data map[string]any) {
			data["confidential"] = true
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.NoiseReceipt) { res.Noise = r }),
	},

	models.EndpointPortalHelp: {
		enrich: func(now time.Time, data map[string]any) {
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.PortalHelpReceipt) { res.PortalHelp = r }),
	},

	models.EndpointDocuments: {
		enrich: func(now time.Time, data map[string]any) {
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.DocumentReceipt) { res.Document = r }),
	},

	models.EndpointHandoff: {
		enrich: func(now time.Time, data map[string]any) {
			priority, department := HandoffRouting(stringField(data, "summary"))
			data["priority"] = priority
			data["department"] = department
			data["created_at"] = now.Format(time.RFC3339)
		},
		decode: decodeInto(func(res *models.DispatchResult, r *models.HandoffReceipt) { res.Handoff = r }),
	},
}

// WorkOrderPriority derives the work-order priority from the issue type.
func WorkOrderPriority(issueType string) string {
	switch strings.ToLower(issueType) {
	case "heating", "electrical", "plumbing":
		return "urgent"
	case "lock", "appliance":
		return "high"
	default:
		return "medium"
	}
}

// HandoffRouting derives priority and department from a keyword scan of the
// free-text summary.
func HandoffRouting(summary string) (priority, department string) {
	lower := strings.ToLower(summary)
	priority = "low"
	department = "admin"
	if containsAny(lower, "urgent", "emergency", "urgence") {
		priority = "high"
	}
	switch {
	case containsAny(lower, "maintenance", "repair", "entretien", "réparation"):
		department = "service"
	case containsAny(lower, "lease", "rental", "bail", "location"):
		department = "leasing"
	}
	return priority, department
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}
