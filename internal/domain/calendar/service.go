package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Service owns the appointment snapshot and derives week views from it.
// Views are recomputed atomically from the current snapshot on every call;
// the snapshot itself is replaced only by a successful refresh, so a failed
// fetch leaves the previously rendered grid intact.
type Service struct {
	source AppointmentSource
	cfg    GridConfig
	logger zerolog.Logger
	clock  func() time.Time

	mu          sync.Mutex
	snapshot    []Appointment
	hasSnapshot bool
	lastErr     error
	fetchGen    uint64
	fetchCancel context.CancelFunc
}

// NewService wires a service over the given source. clock may be nil, in
// which case time.Now is used.
func NewService(source AppointmentSource, cfg GridConfig, logger zerolog.Logger, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		source: source,
		cfg:    cfg,
		logger: logger,
		clock:  clock,
	}
}

// Refresh fetches a fresh appointment list and replaces the snapshot. A new
// refresh supersedes any in-flight one: the previous fetch's context is
// canceled before the new request starts, mirroring abort-on-change
// semantics. On failure the previous snapshot is kept and the error is
// recorded for WeekView to surface.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.fetchCancel != nil {
		s.fetchCancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.fetchCancel = cancel
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()
	defer cancel()

	records, err := s.source.ListAppointments(fetchCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		// Superseded by a newer refresh; its result wins.
		return err
	}
	s.fetchCancel = nil
	if err != nil {
		s.lastErr = err
		s.logger.Error().Err(err).Msg("appointment refresh failed")
		return err
	}
	s.snapshot = records
	s.hasSnapshot = true
	s.lastErr = nil
	s.logger.Info().Int("count", len(records)).Msg("appointment snapshot updated")
	return nil
}

// ensureSnapshot fetches once when no snapshot exists yet.
func (s *Service) ensureSnapshot(ctx context.Context) error {
	s.mu.Lock()
	ready := s.hasSnapshot
	s.mu.Unlock()
	if ready {
		return nil
	}
	return s.Refresh(ctx)
}

// WeekView composes the weekly grid for the given query from the current
// snapshot. When the last refresh failed but an older snapshot exists, the
// stale view is returned together with the refresh error so callers can
// show the previous grid plus an error banner.
func (s *Service) WeekView(ctx context.Context, q WeekQuery) (WeekView, error) {
	if err := s.ensureSnapshot(ctx); err != nil {
		s.mu.Lock()
		ready := s.hasSnapshot
		s.mu.Unlock()
		if !ready {
			return WeekView{}, err
		}
	}

	s.mu.Lock()
	records := s.snapshot
	staleErr := s.lastErr
	s.mu.Unlock()

	view := ComposeWeek(records, q, s.clock(), s.cfg)
	if view.Dropped > 0 {
		s.logger.Warn().Int("dropped", view.Dropped).Msg("appointments with unparseable dates excluded")
	}
	return view, staleErr
}

// Options returns the doctor and department filter options derived from the
// full snapshot.
func (s *Service) Options(ctx context.Context) (doctors, departments []Option, err error) {
	if err := s.ensureSnapshot(ctx); err != nil {
		s.mu.Lock()
		ready := s.hasSnapshot
		s.mu.Unlock()
		if !ready {
			return nil, nil, err
		}
	}
	s.mu.Lock()
	records := s.snapshot
	s.mu.Unlock()
	doctors, departments = FilterOptions(records)
	return doctors, departments, nil
}

// GridConfig exposes the render constants the service composes with.
func (s *Service) GridConfig() GridConfig {
	return s.cfg
}
