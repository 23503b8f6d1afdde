package competitions

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the periodic job that completes reviews of competitions
// whose end date has passed.
type Scheduler struct {
	service *Service
	cron    *cron.Cron
	logger  *zap.Logger
}

func NewScheduler(service *Service, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service: service,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the close job with the given cron spec and starts the
// scheduler in the background.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("review close scheduler started", zap.String("cron", spec))
	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	closed, err := s.service.CompleteExpiredReviews(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to complete expired reviews", zap.Error(err))
		return
	}
	if closed > 0 {
		s.logger.Info("completed expired reviews", zap.Int64("count", closed))
	}
}
