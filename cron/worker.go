package cron

import (
	"context"
	"fmt"
	"log"

	"hairbook/config"
	"hairbook/services/booking"
	"hairbook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitCompletionWorker runs the async worker and the periodic scheduler that
// together sweep elapsed accepted bookings into completed state.
func InitCompletionWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCompletionSweep, handleCompletionSweep(bookingSvc))

	go func() {
		log.Println("[CompletionWorker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[CompletionWorker] Failed to start worker: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	interval := config.AppConfig.CompletionSweepMinutes
	if interval <= 0 {
		interval = 5
	}
	spec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(spec, tasks.NewCompletionSweepTask()); err != nil {
		log.Fatalf("[CompletionWorker] Failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[CompletionWorker] Failed to start scheduler: %v", err)
		}
	}()
}

func handleCompletionSweep(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := bookingSvc.CompleteElapsed(ctx)
		if err != nil {
			log.Printf("[CompletionSweep] Sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[CompletionSweep] Completed %d elapsed bookings", n)
		}
		return nil
	}
}
