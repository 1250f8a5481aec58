package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultSourceTimeout = 20 * time.Second

// HTTPSource fetches appointments from the clinic management API. It is a
// pure consumer: every write (create, reschedule, delete) goes through the
// upstream CRUD endpoints and shows up here on the next fetch.
type HTTPSource struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  zerolog.Logger
}

// NewHTTPSource creates a source for the given upstream base URL. token, if
// non-empty, is attached as a bearer token; obtaining and refreshing it is
// the caller's concern.
func NewHTTPSource(baseURL, token string, logger zerolog.Logger) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: defaultSourceTimeout},
		logger:  logger,
	}
}

// listEnvelope covers the paginated object shape some deployments return
// instead of a bare array.
type listEnvelope struct {
	Results []Appointment `json:"results"`
	Data    []Appointment `json:"data"`
	Items   []Appointment `json:"items"`
}

// ListAppointments fetches the calendar list endpoint and decodes either a
// bare JSON array or a paginated envelope. The request is tied to ctx, so a
// superseding refresh aborts an in-flight one.
func (s *HTTPSource) ListAppointments(ctx context.Context) ([]Appointment, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("calendar source: missing upstream base url")
	}

	url := s.baseURL + "/en/calendar/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("calendar source: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar source: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("calendar source: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return nil, fmt.Errorf("calendar source: status %d: %s", resp.StatusCode, msg)
	}

	records, err := decodeAppointmentList(body)
	if err != nil {
		return nil, fmt.Errorf("calendar source: decode response: %w", err)
	}

	s.logger.Debug().Int("count", len(records)).Str("url", url).Msg("fetched appointments")
	return records, nil
}

// decodeAppointmentList accepts a bare array or an envelope whose array sits
// under results, data or items.
func decodeAppointmentList(body []byte) ([]Appointment, error) {
	var records []Appointment
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	switch {
	case env.Results != nil:
		return env.Results, nil
	case env.Data != nil:
		return env.Data, nil
	case env.Items != nil:
		return env.Items, nil
	}
	return nil, fmt.Errorf("unrecognized list shape")
}
