package workers

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/services"
	"smarthire_backend/internal/services/dto"
)

const expiryWorkerName = "expiry_worker"

// ExpiryWorker по расписанию истекает просроченные вакансии и подписки
type ExpiryWorker struct {
	sweep      services.SweepService
	schedule   string
	runOnStart bool
	cron       *cron.Cron
}

func NewExpiryWorker(sweep services.SweepService, schedule string, runOnStart bool) *ExpiryWorker {
	return &ExpiryWorker{
		sweep:      sweep,
		schedule:   schedule,
		runOnStart: runOnStart,
		cron:       cron.New(),
	}
}

// Start регистрирует задачу и блокируется до отмены ctx.
// После отмены ждет завершения текущего прогона.
func (w *ExpiryWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", w.schedule, err)
	}

	if w.runOnStart {
		w.RunOnce(ctx)
	}

	w.cron.Start()
	logger.WorkerLog(expiryWorkerName, "start", nil, "schedule", w.schedule)

	<-ctx.Done()
	w.Stop()
	return nil
}

func (w *ExpiryWorker) Stop() {
	<-w.cron.Stop().Done()
	logger.WorkerLog(expiryWorkerName, "stop", nil)
}

// RunOnce выполняет один прогон; ошибки шагов логируются внутри SweepService
func (w *ExpiryWorker) RunOnce(ctx context.Context) *dto.SweepResult {
	result := w.sweep.Run(ctx)
	logger.WorkerLog(expiryWorkerName, "sweep", nil,
		"jobs_expired", result.JobsExpired,
		"subscriptions_expired", result.SubscriptionsExpired,
	)
	return result
}
