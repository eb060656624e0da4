package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
)

// StatsJob periodically refreshes the business gauges from the database
type StatsJob struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cron      *cron.Cron
}

// NewStatsJob creates a new StatsJob
func NewStatsJob(
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatsJob {
	return &StatsJob{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		metrics:   m,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the refresh every minute and runs one refresh immediately
func (j *StatsJob) Start() error {
	if _, err := j.cron.AddFunc("@every 1m", j.refresh); err != nil {
		return err
	}
	j.cron.Start()
	go j.refresh()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish
func (j *StatsJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *StatsJob) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasks, err := j.taskRepo.CountAll(ctx)
	if err != nil {
		j.logger.Warn("Failed to count tasks for metrics", zap.Error(err))
		return
	}
	boards, err := j.boardRepo.CountAll(ctx)
	if err != nil {
		j.logger.Warn("Failed to count boards for metrics", zap.Error(err))
		return
	}

	j.metrics.SetTasksTotal(tasks)
	j.metrics.SetBoardsTotal(boards)
}
