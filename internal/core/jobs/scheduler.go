// Package jobs runs the assistant's cron housekeeping: pruning stale
// conversation contexts and sending rent-due reminders.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/havenstead/tenant-assist-be/internal/core/notification"
	"github.com/havenstead/tenant-assist-be/internal/repositories"
)

const (
	// Contexts idle longer than this are deleted; the conversation and its
	// messages are kept.
	contextRetention = 30 * 24 * time.Hour

	// Reminders go out when rent is due within this many days.
	reminderWindowDays = 3

	pruneSchedule    = "0 0 3 * * *" // daily 03:00
	reminderSchedule = "0 0 9 * * *" // daily 09:00
)

type Scheduler struct {
	cron     *cron.Cron
	contexts repositories.ContextRepo
	leases   repositories.LeaseRepo
	notifier *notification.Service
}

func NewScheduler(contexts repositories.ContextRepo, leases repositories.LeaseRepo, notifier *notification.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		contexts: contexts,
		leases:   leases,
		notifier: notifier,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(pruneSchedule, s.pruneContexts); err != nil {
		return fmt.Errorf("failed to schedule context pruning: %w", err)
	}
	if _, err := s.cron.AddFunc(reminderSchedule, s.sendRentReminders); err != nil {
		return fmt.Errorf("failed to schedule rent reminders: %w", err)
	}
	s.cron.Start()
	log.Info().Msg("housekeeping scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info().Msg("housekeeping scheduler stopped")
}

func (s *Scheduler) pruneContexts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.contexts.PruneIdle(ctx, contextRetention)
	if err != nil {
		log.Error().Err(err).Msg("context pruning failed")
		return
	}
	log.Info().Int64("removed", removed).Msg("pruned idle conversation contexts")
}

func (s *Scheduler) sendRentReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reminders, err := s.leases.DueWithin(ctx, reminderWindowDays)
	if err != nil {
		log.Error().Err(err).Msg("rent reminder query failed")
		return
	}

	for _, r := range reminders {
		s.notifier.Notify(ctx, &notification.Recipient{
			ID:    r.TenantID,
			Name:  r.TenantName,
			Email: r.TenantEmail,
			Phone: r.TenantPhone,
		}, notification.TypeRentReminder,
			"Rent due soon",
			fmt.Sprintf("Hi %s, a reminder that your rent of $%.2f is due on the %d of this month. You can pay through your tenant portal.",
				r.TenantName, r.Amount, r.DueDay))
	}
	log.Info().Int("count", len(reminders)).Msg("rent reminders sent")
}
