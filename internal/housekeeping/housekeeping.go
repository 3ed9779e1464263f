// Package housekeeping runs the scheduled start of the cleaning day.
package housekeeping

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"hotel-ops-backend/config"
	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/parse"
	"hotel-ops-backend/internal/store"
)

// Service puts every tenant's rooms into cleaning once a day.
type Service struct {
	cfg   *config.Config
	store store.Store
}

// NewService creates a housekeeping service.
func NewService(cfg *config.Config, s store.Store) *Service {
	return &Service{cfg: cfg, store: s}
}

// Run schedules the daily job in the hotel timezone and blocks until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if !s.cfg.Housekeeping.Enabled {
		log.Println("Housekeeping scheduler is disabled. Not starting.")
		return nil
	}

	at, err := parse.ClockTime(s.cfg.Housekeeping.StartDayAt)
	if err != nil {
		return fmt.Errorf("invalid housekeeping.start_day_at: %w", err)
	}

	loc := s.cfg.Hotel.Location
	if loc == nil {
		loc = time.UTC
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(at.Hour), uint(at.Minute), uint(at.Second)),
		)),
		gocron.NewTask(func() { s.RunOnce(ctx) }),
		gocron.WithName("start-day-cleaning"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule start of day: %w", err)
	}

	log.Printf("Housekeeping scheduled daily at %s (%s)", s.cfg.Housekeeping.StartDayAt, loc)
	scheduler.Start()

	<-ctx.Done()
	log.Println("Housekeeping scheduler shutting down.")
	return scheduler.Shutdown()
}

// RunOnce starts the cleaning day for every tenant that owns rooms and
// returns the number of tenants processed. A failing tenant does not stop
// the others.
func (s *Service) RunOnce(ctx context.Context) int {
	tenants, err := s.store.TenantIDs(ctx)
	if err != nil {
		log.Printf("Error listing tenants: %v", err)
		return 0
	}

	done := 0
	for _, tenantID := range tenants {
		n, err := s.store.StartDayCleaning(ctx, tenantID)
		if err != nil {
			log.Printf("Error starting cleaning for tenant %d: %v", tenantID, err)
			continue
		}
		msg := fmt.Sprintf("Start of day: %d rooms set to cleaning", n)
		if _, err := s.store.Notify(ctx, tenantID, msg, model.PriorityNormal); err != nil {
			log.Printf("Error notifying tenant %d: %v", tenantID, err)
		}
		done++
	}
	log.Printf("Start of day finished for %d/%d tenants", done, len(tenants))
	return done
}
