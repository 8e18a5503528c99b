package tasks

import "time"

// Task Types
const (
	// Campaign related tasks
	TaskTypeCampaignDispatch = "campaign:dispatch"

	// Periodic maintenance tasks
	TaskTypeReminderScan      = "task:reminder_scan"
	TaskTypeAttachmentCleanup = "attachment:cleanup"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like campaign dispatch
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Priorities (1-10, higher is more important)
const (
	PriorityCritical = 10
	PriorityHigh     = 8
	PriorityNormal   = 5
	PriorityLow      = 3
	PriorityBG       = 1
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// CampaignDispatchPayload identifies the campaign a dispatch task should run.
type CampaignDispatchPayload struct {
	CampaignID string `json:"campaign_id"`
}
