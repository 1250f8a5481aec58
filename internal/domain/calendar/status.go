package calendar

import "strings"

// Status is the visual category an appointment renders as.
type Status int

const (
	StatusDefault Status = iota
	StatusLive
	StatusBooked
	StatusDone
	StatusCanceled
)

var statusNames = map[Status]string{
	StatusDefault:  "default",
	StatusLive:     "live",
	StatusBooked:   "booked",
	StatusDone:     "done",
	StatusCanceled: "canceled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "default"
}

// MarshalJSON renders the status as its lowercase name.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses the lowercase name produced by MarshalJSON; unknown
// names fall back to StatusDefault, mirroring String().
func (s *Status) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	for st, n := range statusNames {
		if n == name {
			*s = st
			return nil
		}
	}
	*s = StatusDefault
	return nil
}

// codeToStatus maps the machine status codes the backend should always send.
var codeToStatus = map[string]Status{
	"waiting":            StatusLive,
	"pre-registration":   StatusBooked,
	"had an appointment": StatusDone,
	"canceled":           StatusCanceled,
}

// displayToStatus is the fallback dictionary for human display text, covering
// the English and Russian variants the backend has emitted.
var displayToStatus = map[string]Status{
	// live
	"живая очередь": StatusLive,
	"live":          StatusLive,
	"queue":         StatusLive,

	// booked / pre-registration
	"по записи":        StatusBooked,
	"предзапись":       StatusBooked,
	"pre-registration": StatusBooked,
	"booked":           StatusBooked,

	// done
	"был на приёме":      StatusDone,
	"был на приеме":      StatusDone,
	"done":               StatusDone,
	"completed":          StatusDone,
	"finished":           StatusDone,
	"had an appointment": StatusDone,

	// canceled
	"отменён":   StatusCanceled,
	"отменен":   StatusCanceled,
	"отменено":  StatusCanceled,
	"canceled":  StatusCanceled,
	"cancelled": StatusCanceled,
}

func normStatus(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// ClassifyStatus resolves the visual category of an appointment: first the
// machine code field, then the display-text dictionary, otherwise
// StatusDefault. Unknown values never block rendering.
func ClassifyStatus(a *Appointment) Status {
	code := normStatus(a.PatientStatus)
	if code == "" {
		code = normStatus(a.Status)
	}
	if code != "" {
		if s, ok := codeToStatus[code]; ok {
			return s
		}
	}

	display := normStatus(a.PatientStatusDisplay)
	if display == "" {
		display = normStatus(a.StatusDisplay)
	}
	if display != "" {
		if s, ok := displayToStatus[display]; ok {
			return s
		}
	}

	return StatusDefault
}

// StatusStyle is the fixed render style of a status category.
type StatusStyle struct {
	Fill   string `json:"fill"`
	Accent string `json:"accent"`
	Chip   string `json:"chip"`
	Label  string `json:"label"`
}

// statusStyles is a static table; styles are never computed.
var statusStyles = map[Status]StatusStyle{
	StatusLive:     {Fill: "#DCFFD7", Accent: "#119618", Chip: "#92FF96", Label: "Живая очередь"},
	StatusBooked:   {Fill: "#FFE9E5", Accent: "#FF684C", Chip: "#FFA7F2", Label: "По записи"},
	StatusDone:     {Fill: "#F3F4F6", Accent: "#6B7280", Chip: "#E5E7EB", Label: "Был на приёме"},
	StatusCanceled: {Fill: "#FEF2F2", Accent: "#EF4444", Chip: "#FEE2E2", Label: "Отменён"},
	StatusDefault:  {Fill: "#E0E7FF", Accent: "#6366F1", Chip: "#C7D2FE", Label: "Приём"},
}

// Style returns the render style for s, falling back to the default style.
func (s Status) Style() StatusStyle {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return statusStyles[StatusDefault]
}
