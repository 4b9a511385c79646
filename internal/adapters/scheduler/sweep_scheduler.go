package scheduler

import (
	"context"
	"time"

	"auction-marketplace-service/internal/domain/shared"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	lockTTL      = 15 * time.Minute
	maxQueuedRuns = 8
)

// SweepService is the lifecycle surface the scheduler drives
type SweepService interface {
	RunOpenSweep(ctx context.Context) (shared.SweepResult, error)
	RunCloseSweep(ctx context.Context) (shared.SweepResult, error)
}

// SweepScheduler fires the open sweep at day start and the close sweep at
// day end. A single-worker pool serializes runs in-process, and a Redis
// lock keeps multiple instances from sweeping concurrently. Both guards are
// optimizations: the sweep predicates are idempotent, so overlapping runs
// would be wasteful but not incorrect.
type SweepScheduler struct {
	cron       *cron.Cron
	redis      *redis.Client
	lifecycle  SweepService
	pool       *pond.WorkerPool
	instanceID string
	openSpec   string
	closeSpec  string
	logger     zerolog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

type SweepSchedulerParams struct {
	// RedisClient is optional; without it only the in-process guard applies
	RedisClient *redis.Client
	Lifecycle   SweepService
	OpenSpec    string
	CloseSpec   string
	Logger      zerolog.Logger
}

// NewSweepScheduler creates a new sweep scheduler
func NewSweepScheduler(params SweepSchedulerParams) *SweepScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &SweepScheduler{
		cron:       cron.New(),
		redis:      params.RedisClient,
		lifecycle:  params.Lifecycle,
		pool:       pond.New(1, maxQueuedRuns, pond.Context(ctx)),
		instanceID: uuid.New().String(),
		openSpec:   params.OpenSpec,
		closeSpec:  params.CloseSpec,
		logger:     params.Logger.With().Str("component", "sweep_scheduler").Logger(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start registers the cron entries and begins firing sweeps
func (s *SweepScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.openSpec, s.OpenSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.closeSpec, s.CloseSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("open_spec", s.openSpec).
		Str("close_spec", s.closeSpec).
		Msg("Sweep scheduler started")

	return nil
}

// Stop stops firing new sweeps and waits for any in-flight run
func (s *SweepScheduler) Stop() {
	s.logger.Info().Msg("Stopping sweep scheduler")
	s.cron.Stop()
	s.pool.StopAndWait()
	s.cancel()
}

// OpenSweep enqueues an open sweep run. Safe to invoke repeatedly and
// concurrently with itself.
func (s *SweepScheduler) OpenSweep() {
	s.pool.Submit(func() {
		s.runGuarded("open", func(ctx context.Context) (shared.SweepResult, error) {
			return s.lifecycle.RunOpenSweep(ctx)
		})
	})
}

// CloseSweep enqueues a close sweep run. Safe to invoke repeatedly and
// concurrently with itself.
func (s *SweepScheduler) CloseSweep() {
	s.pool.Submit(func() {
		s.runGuarded("close", func(ctx context.Context) (shared.SweepResult, error) {
			return s.lifecycle.RunCloseSweep(ctx)
		})
	})
}

func (s *SweepScheduler) runGuarded(name string, sweep func(context.Context) (shared.SweepResult, error)) {
	if !s.acquireLock(name) {
		s.logger.Info().Str("sweep", name).Msg("Sweep lock held elsewhere, skipping run")
		return
	}
	defer s.releaseLock(name)

	result, err := sweep(s.ctx)
	if err != nil {
		// Sweep failures never crash the process; the next scheduled run is
		// the retry mechanism.
		s.logger.Error().Err(err).Str("sweep", name).Msg("Sweep run failed")
		return
	}

	s.logger.Info().
		Str("sweep", name).
		Int64("opened", result.Opened).
		Int("closed", result.Closed).
		Int("transferred", result.Transferred).
		Msg("Sweep run finished")
}

func (s *SweepScheduler) acquireLock(name string) bool {
	if s.redis == nil {
		return true
	}

	acquired, err := s.redis.SetNX(s.ctx, lockKey(name), s.instanceID, lockTTL).Result()
	if err != nil {
		s.logger.Warn().Err(err).Str("sweep", name).Msg("Sweep lock unavailable, running unguarded")
		return true
	}

	return acquired
}

func (s *SweepScheduler) releaseLock(name string) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(s.ctx, lockKey(name)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("sweep", name).Msg("Failed to release sweep lock")
	}
}

func lockKey(name string) string {
	return "sweep:lock:" + name
}
