package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestHTTPSourceListAppointments(t *testing.T) {
	const body = `[
		{"id": 1, "appointment_date": "2025-03-10 09:00", "duration_minutes": 30,
		 "patient_status": "waiting",
		 "doctor": {"username": "ivanov", "job_title": "Cardiologist"},
		 "department": {"department_name": "Cardiology"},
		 "patient": {"full_name": "Anna K."}}
	]`

	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "secret-token", zerolog.Nop())
	records, err := src.ListAppointments(context.Background())
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}

	if gotPath != "/en/calendar/" {
		t.Errorf("path = %q, want /en/calendar/", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.ID.String() != "1" {
		t.Errorf("id = %s, want 1", rec.ID)
	}
	if rec.DoctorUsername() != "ivanov" || rec.DepartmentName() != "Cardiology" || rec.PatientName() != "Anna K." {
		t.Errorf("refs not decoded: %+v", rec)
	}
}

func TestHTTPSourceEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id": 1}, {"id": 2}]`, 2},
		{"results envelope", `{"count": 2, "results": [{"id": 1}, {"id": 2}]}`, 2},
		{"data envelope", `{"data": [{"id": 1}]}`, 1},
		{"items envelope", `{"items": []}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			src := NewHTTPSource(srv.URL, "", zerolog.Nop())
			records, err := src.ListAppointments(context.Background())
			if err != nil {
				t.Fatalf("ListAppointments: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("records = %d, want %d", len(records), tt.want)
			}
		})
	}
}

func TestHTTPSourceUnrecognizedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 5}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "", zerolog.Nop())
	if _, err := src.ListAppointments(context.Background()); err == nil {
		t.Fatal("expected decode error for unrecognized shape")
	}
}

func TestHTTPSourceNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "", zerolog.Nop())
	if _, err := src.ListAppointments(context.Background()); err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected authorization header %q", gotAuth)
	}
}

func TestHTTPSourceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("x", 1000), http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "", zerolog.Nop())
	_, err := src.ListAppointments(context.Background())
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("error = %v, want status in message", err)
	}
	if len(err.Error()) > 400 {
		t.Errorf("error message not truncated: %d chars", len(err.Error()))
	}
}

func TestHTTPSourceContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	src := NewHTTPSource(srv.URL, "", zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if _, err := src.ListAppointments(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestHTTPSourceMissingBaseURL(t *testing.T) {
	src := NewHTTPSource("", "", zerolog.Nop())
	if _, err := src.ListAppointments(context.Background()); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestHTTPSourceTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "", zerolog.Nop())
	if _, err := src.ListAppointments(context.Background()); err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if gotPath != "/en/calendar/" {
		t.Errorf("path = %q, want /en/calendar/", gotPath)
	}
}
