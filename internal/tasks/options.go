package tasks

import (
	"time"

	"github.com/robfig/cron/v3"
)

// NextCronRun resolves the next run time for a cron expression, or the
// fallback interval when the expression does not parse. Used with
// asynq.ProcessAt for recurring campaign dispatch.
func NextCronRun(expr string, fallback time.Duration) time.Time {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Now().Add(fallback)
	}
	return schedule.Next(time.Now())
}
