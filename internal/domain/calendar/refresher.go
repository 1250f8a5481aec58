package calendar

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultRefreshSpec refreshes the snapshot once a minute, the same cadence
// the dashboard uses for its current-time marker.
const DefaultRefreshSpec = "@every 1m"

// Refresher re-fetches the appointment snapshot on a cron schedule for as
// long as the server runs. Each tick performs a full Refresh; the derived
// view is always recomputed from the latest snapshot at request time, so
// ticks never race with filter or week changes.
type Refresher struct {
	svc    *Service
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewRefresher schedules periodic refreshes of svc. spec accepts the
// robfig/cron syntax including descriptors such as "@every 1m"; an empty
// spec falls back to DefaultRefreshSpec.
func NewRefresher(svc *Service, spec string, logger zerolog.Logger) (*Refresher, error) {
	if spec == "" {
		spec = DefaultRefreshSpec
	}
	r := &Refresher{
		svc:    svc,
		cron:   cron.New(),
		logger: logger,
	}
	_, err := r.cron.AddFunc(spec, func() {
		if err := svc.Refresh(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("scheduled refresh failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("refresher: invalid schedule %q: %w", spec, err)
	}
	return r, nil
}

// Start begins the schedule. Safe to call once per Refresher.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Info().Msg("calendar refresher started")
}

// Stop cancels the schedule and waits for a running tick to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info().Msg("calendar refresher stopped")
}
