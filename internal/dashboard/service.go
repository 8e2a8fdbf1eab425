// Package dashboard holds the application state: the current ride
// snapshot, the active filter, and the aggregate bundle derived from them.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scootstats/scootstats/internal/prefs"
	"github.com/scootstats/scootstats/internal/ride"
	"github.com/scootstats/scootstats/internal/stats"
)

// ErrNotConnected is returned by operations that need a connected source.
var ErrNotConnected = errors.New("no data source connected")

// ErrRideNotFound is returned when a ride ID is not in the snapshot.
var ErrRideNotFound = errors.New("ride not found")

// RecentModeWindow is the ride count shown in the recent mode-usage chart.
const RecentModeWindow = 15

// Loader fetches the ride collection from a source URL.
type Loader interface {
	Load(ctx context.Context, url string) ([]ride.Ride, error)
}

// Aggregates is the full derived bundle the presentation layer consumes.
// It is recomputed from scratch whenever the snapshot or filter changes.
type Aggregates struct {
	Totals      stats.Totals          `json:"totals"`
	Monthly     []stats.MonthlyRollup `json:"monthly"`
	Calendar    map[string]float64    `json:"calendar"`
	ModeTotals  []stats.ModeTotal     `json:"modeTotals"`
	RecentModes []stats.ModeUsage     `json:"recentModes"`
	Years       []int                 `json:"years"`
}

// ServiceConfig holds configuration for the dashboard service.
type ServiceConfig struct {
	// Loader fetches ride data (required).
	Loader Loader

	// Prefs persists the source URL and theme (required).
	Prefs prefs.Repository

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service owns the dashboard state. The ride snapshot is immutable and
// replaced wholesale on each successful fetch; a read-write mutex guards
// it because the HTTP surface has concurrent readers.
type Service struct {
	loader Loader
	prefs  prefs.Repository
	logger zerolog.Logger

	mu          sync.RWMutex
	sourceURL   string
	rides       []ride.Ride
	filter      ride.Filter
	aggregates  Aggregates
	lastRefresh time.Time
}

// NewService creates a dashboard service. If a source URL was persisted
// by a previous session it is restored, but no fetch happens until the
// caller asks for one.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		loader: cfg.Loader,
		prefs:  cfg.Prefs,
		logger: cfg.Logger,
	}
	if url, err := cfg.Prefs.Get(context.Background(), prefs.KeySourceURL); err == nil {
		s.sourceURL = url
	}
	return s
}

// Connect verifies the URL by fetching it, then adopts it as the data
// source. Nothing is stored when the fetch fails, so a bad URL leaves the
// caller on the setup state with the classified error.
func (s *Service) Connect(ctx context.Context, url string) error {
	rides, err := s.loader.Load(ctx, url)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sourceURL = url
	s.rides = rides
	s.lastRefresh = time.Now()
	s.recompute()
	s.mu.Unlock()

	if err := s.prefs.Set(ctx, prefs.KeySourceURL, url); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist source URL")
	}

	s.logger.Info().
		Int("rides", len(rides)).
		Msg("data source connected")
	return nil
}

// Refresh re-fetches the connected source. On failure the last good
// snapshot is preserved and the classified error is returned for the
// caller to surface as a transient banner.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.RLock()
	url := s.sourceURL
	s.mu.RUnlock()

	if url == "" {
		return ErrNotConnected
	}

	rides, err := s.loader.Load(ctx, url)
	if err != nil {
		s.logger.Warn().Err(err).Msg("refresh failed, keeping last good data")
		return err
	}

	s.mu.Lock()
	s.rides = rides
	s.lastRefresh = time.Now()
	s.recompute()
	s.mu.Unlock()

	s.logger.Info().
		Int("rides", len(rides)).
		Msg("data source refreshed")
	return nil
}

// Disconnect forgets the source URL and clears the snapshot.
func (s *Service) Disconnect(ctx context.Context) {
	s.mu.Lock()
	s.sourceURL = ""
	s.rides = nil
	s.filter = ride.Filter{}
	s.lastRefresh = time.Time{}
	s.recompute()
	s.mu.Unlock()

	if err := s.prefs.Delete(ctx, prefs.KeySourceURL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to remove persisted source URL")
	}
	s.logger.Info().Msg("data source disconnected")
}

// Connected reports whether a source URL is set.
func (s *Service) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceURL != ""
}

// SourceURL returns the connected source URL, "" when none.
func (s *Service) SourceURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceURL
}

// LastRefresh returns when the snapshot was last replaced.
func (s *Service) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Rides returns the filtered ride collection in source order.
func (s *Service) Rides() []ride.Ride {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Apply(s.rides)
}

// Ride returns one ride from the full (unfiltered) snapshot by ID.
func (s *Service) Ride(id string) (ride.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rides {
		if r.ID == id {
			return r, nil
		}
	}
	return ride.Ride{}, ErrRideNotFound
}

// Filter returns the active filter.
func (s *Service) Filter() ride.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter replaces the active filter and recomputes the aggregates.
func (s *Service) SetFilter(f ride.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.recompute()
}

// TogglePeriod toggles the clicked aggregate-period key on the filter:
// reselecting the active key clears it. Returns the resulting filter.
func (s *Service) TogglePeriod(key string) ride.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.TogglePeriod(key)
	s.recompute()
	return s.filter
}

// Aggregates returns the derived bundle for the current filtered subset.
func (s *Service) Aggregates() Aggregates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregates
}

// Summaries returns period summaries over the filtered subset.
func (s *Service) Summaries(period stats.Period) []stats.Summary {
	s.mu.RLock()
	filtered := s.filter.Apply(s.rides)
	s.mu.RUnlock()
	return stats.Summaries(filtered, period)
}

// recompute rebuilds the aggregate bundle. Callers hold the write lock.
func (s *Service) recompute() {
	filtered := s.filter.Apply(s.rides)
	s.aggregates = Aggregates{
		Totals:      stats.ComputeTotals(filtered),
		Monthly:     stats.MonthlyRollups(filtered),
		Calendar:    stats.Calendar(filtered),
		ModeTotals:  stats.ModeTotals(filtered),
		RecentModes: stats.RecentModeUsage(filtered, RecentModeWindow),
		Years:       stats.Years(filtered),
	}
}

// Theme returns the persisted theme, defaulting to dark.
func (s *Service) Theme(ctx context.Context) string {
	theme, err := s.prefs.Get(ctx, prefs.KeyTheme)
	if err != nil || (theme != prefs.ThemeDark && theme != prefs.ThemeLight) {
		return prefs.ThemeDark
	}
	return theme
}

// SetTheme persists the theme flag.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	if theme != prefs.ThemeDark && theme != prefs.ThemeLight {
		return errors.New("theme must be dark or light")
	}
	return s.prefs.Set(ctx, prefs.KeyTheme, theme)
}
