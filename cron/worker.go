package cron

import (
	"context"
	"log"
	"time"

	"schedly/config"
	appointmentRepo "schedly/database/repository/appointment"
	"schedly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeOverlapAudit = "audit:overlaps"

// InitOverlapAuditWorker runs a background worker that periodically scans
// stored BOOKED appointments for overlapping pairs. The write path already
// prevents overlaps transactionally; the audit is the backstop that surfaces
// anything that slipped in through manual data edits or migrations.
func InitOverlapAuditWorker(appointments appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuditQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOverlapAudit, handleOverlapAudit(appointments))

	go func() {
		log.Println("[OverlapAudit] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[OverlapAudit] worker stopped: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeOverlapAudit, nil)); err != nil {
		log.Printf("[OverlapAudit] failed to register periodic task: %v", err)
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[OverlapAudit] scheduler stopped: %v", err)
		}
	}()
}

func handleOverlapAudit(appointments appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		started := time.Now()

		businessIDs, err := appointments.BusinessIDsWithBooked(ctx)
		if err != nil {
			logger.Error("overlap audit: failed to list businesses", zap.Error(err))
			return err
		}

		var overlapping int
		for _, businessID := range businessIDs {
			appts, err := appointments.ListBookedByBusiness(ctx, businessID)
			if err != nil {
				logger.Error("overlap audit: failed to list appointments",
					zap.String("businessID", businessID), zap.Error(err))
				continue
			}

			// ListBookedByBusiness returns startAt-ascending rows, so each
			// appointment only needs checking against its neighbors until one
			// starts at or after its end.
			for i := 0; i < len(appts); i++ {
				for j := i + 1; j < len(appts); j++ {
					if !appts[j].StartAt.Before(appts[i].EndAt()) {
						break
					}
					if utils.InstantsOverlap(appts[i].StartAt, appts[i].DurationMin, appts[j].StartAt, appts[j].DurationMin) {
						overlapping++
						logger.Warn("overlap audit: stored appointments overlap",
							zap.String("businessID", businessID),
							zap.String("appointmentA", appts[i].ID),
							zap.String("appointmentB", appts[j].ID))
					}
				}
			}
		}

		logger.Info("overlap audit completed",
			zap.Int("businesses", len(businessIDs)),
			zap.Int("overlappingPairs", overlapping),
			zap.Duration("took", time.Since(started)))
		return nil
	}
}
