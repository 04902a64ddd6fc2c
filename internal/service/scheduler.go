// Package service содержит планировщик проверок.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Отложенный запуск первой проверки после старта бота
const initialCheckDelay = 20 * time.Second

// Scheduler запускает циклы проверки плейлистов по расписанию
type Scheduler struct {
	monitor  *Monitor
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
	mu       sync.Mutex
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScheduler создает новый планировщик
func NewScheduler(monitor *Monitor, interval time.Duration, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		monitor:  monitor,
		interval: interval,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.runCycle); err != nil {
		return fmt.Errorf("failed to schedule check cycle: %w", err)
	}

	s.cron.Start()
	s.running = true

	// Первая проверка вскоре после старта, не дожидаясь полного интервала
	go func() {
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(initialCheckDelay):
			s.runCycle()
		}
	}()

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.cron.Stop()
	s.running = false

	s.logger.Info("Scheduler stopped")
}

// runCycle выполняет один цикл проверки
func (s *Scheduler) runCycle() {
	report := s.monitor.RunCycle(s.ctx)

	counts := make(map[Outcome]int)
	for _, outcome := range report {
		counts[outcome]++
	}

	s.logger.Info("Scheduled check cycle completed",
		zap.Int("unchanged", counts[OutcomeUnchanged]),
		zap.Int("notified", counts[OutcomeNotified]),
		zap.Int("deleted", counts[OutcomeDeleted]),
		zap.Int("skipped", counts[OutcomeSkipped]))
}
