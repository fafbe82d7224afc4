package appointment

import (
	"strings"
	"time"
)

// Status is the outreach contact status of one visit. Transitions are
// unordered: operators may set any value at any time.
type Status string

const (
	StatusNone              Status = ""
	StatusWillNotReschedule Status = "will_not_reschedule"
	StatusRescheduled       Status = "rescheduled"
	StatusNoAnswerPending   Status = "no_answer_pending"
	StatusChangedDoctor     Status = "changed_doctor"
	StatusMessageSent       Status = "message_sent"
)

// AllStatuses lists every non-empty status, in the order the operator
// panel presents them.
var AllStatuses = []Status{
	StatusWillNotReschedule,
	StatusRescheduled,
	StatusNoAnswerPending,
	StatusChangedDoctor,
	StatusMessageSent,
}

// sheetLabels are the values written to the backing sheet. They match the
// labels the legacy sheet already contains, minus the emoji prefixes.
var sheetLabels = map[Status]string{
	StatusNone:              "",
	StatusWillNotReschedule: "Não quer reagendar",
	StatusRescheduled:       "Reagendou",
	StatusNoAnswerPending:   "Não atendeu (retornar contato)",
	StatusChangedDoctor:     "Mudou de médico",
	StatusMessageSent:       "Mensagem enviada",
}

// Label returns the sheet representation of the status.
func (s Status) Label() string {
	return sheetLabels[s]
}

// Valid reports whether s is one of the closed set of statuses.
func (s Status) Valid() bool {
	_, ok := sheetLabels[s]
	return ok
}

// ParseStatus maps a raw cell or API value to a Status. It accepts the
// canonical tokens, the sheet labels, and the legacy emoji-prefixed
// labels. Unrecognized values map to StatusNone, mirroring how the panel
// has always treated hand-edited cells.
func ParseStatus(raw string) Status {
	trimmed := strings.TrimSpace(stripLegacyPrefix(raw))
	if trimmed == "" {
		return StatusNone
	}
	for st, label := range sheetLabels {
		if strings.EqualFold(trimmed, label) || strings.EqualFold(trimmed, string(st)) {
			return st
		}
	}
	return StatusNone
}

// stripLegacyPrefix removes the colored-circle emoji the legacy sheet
// prepended to status labels.
func stripLegacyPrefix(s string) string {
	for _, prefix := range []string{"🔴", "🟢", "🟡", "🔵", "🟦"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return s
}

// headerOffset accounts for the header occupying sheet row 1.
const headerOffset = 1

// RowRef is the absolute 1-based sheet row of a record. It is assigned at
// load time as headerOffset + positional index and is only valid within
// that load cycle: the backing store has no durable row identity.
type RowRef int

// Record is one clinical visit entry. The record set is read-only from
// the panel's perspective except for Status.
type Record struct {
	CPF       string    `json:"cpf"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `json:"specialty"`
	Doctor    string    `json:"doctor,omitempty"`
	VisitDate time.Time `json:"visit_date"`
	Status    Status    `json:"status"`
	Ref       RowRef    `json:"-"`
}
