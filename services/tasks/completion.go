package tasks

import "github.com/hibiken/asynq"

// TypeCompletionSweep marks accepted bookings whose slot time has elapsed as
// completed.
const TypeCompletionSweep = "booking:complete_elapsed"

// NewCompletionSweepTask builds the periodic sweep task. It carries no
// payload; the handler scans for elapsed bookings itself.
func NewCompletionSweepTask() *asynq.Task {
	return asynq.NewTask(TypeCompletionSweep, nil)
}
