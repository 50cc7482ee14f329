package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
)

// Scheduler polls the daily seed for calendar rollover and re-primes
// dashboards for the configured locations when it happens. The seed
// itself has no timer; this is the polling caller.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *dashboard.Service
	locations []string
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a Scheduler.
func New(locations []string, interval time.Duration, service *dashboard.Service, log *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the rollover poll and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	seconds := int(s.interval.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	_, err := s.scheduler.Every(seconds).Seconds().Do(func() {
		if !s.service.RefreshIfDayChanged() {
			return
		}

		s.log.Info("scheduler: day rolled over, re-priming dashboards")
		for _, loc := range s.locations {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := s.service.GetDashboard(ctx, loc); err != nil {
				s.log.WithField("location", loc).WithError(err).Warn("scheduler: priming failed")
			}
			cancel()
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
