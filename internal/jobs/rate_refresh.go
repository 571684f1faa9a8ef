package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
)

// snapshotTimeout bounds a single rate refresh run.
const snapshotTimeout = 2 * time.Minute

// StartRateRefresh schedules the daily exchange rate snapshot on the given
// cron spec and returns the running scheduler. The caller stops it on
// shutdown.
func StartRateRefresh(cronSpec string, rateService portssvc.ExchangeRateSvcFacade, logger *slog.Logger) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		logger.Info("Starting scheduled exchange rate snapshot")
		if err := rateService.SnapshotRates(ctx); err != nil {
			logger.Error("Scheduled exchange rate snapshot failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("Scheduled exchange rate snapshot finished")
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	logger.Info("Exchange rate refresh job scheduled", slog.String("cron", cronSpec))
	return scheduler, nil
}
