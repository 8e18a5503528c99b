package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"pipecrm/internal/events"
	"pipecrm/internal/models"
	"pipecrm/internal/tasks/rate"
	"pipecrm/internal/utils"
	console "pipecrm/internal/utils/logger"
)

// TaskHandler handles task processing with improved error handling and logging
type TaskHandler struct {
	db          *gorm.DB
	logger      *console.Logger
	taskClient  *TaskClient
	rateLimiter *rate.QueueRateLimiter
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB, taskClient *TaskClient) *TaskHandler {
	return &TaskHandler{
		db:         db,
		logger:     console.New("task_handler"),
		taskClient: taskClient,
		rateLimiter: rate.NewQueueRateLimiter(taskClient.GetRedisClient(), rate.QueueConfig{
			Name: QueueCritical,
			RateLimit: rate.RateLimit{
				Window:  time.Minute,
				MaxJobs: 30,
			},
		}),
	}
}

func marshalPayload(v interface{}) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}
	return payload, nil
}

// HandleCampaignDispatch runs a scheduled campaign: moves it to running,
// performs the send described by its settings, then marks it completed.
// Returning an error lets asynq retry; campaigns no longer in the scheduled
// state are skipped without retry.
func (h *TaskHandler) HandleCampaignDispatch(ctx context.Context, t *asynq.Task) error {
	var payload CampaignDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid dispatch payload: %w: %w", err, asynq.SkipRetry)
	}

	var campaign models.Campaign
	if err := h.db.WithContext(ctx).First(&campaign, "id = ?", payload.CampaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.Warn("campaign %s deleted before dispatch, skipping", payload.CampaignID)
			return nil
		}
		return h.logger.Error("failed to load campaign %s", err, payload.CampaignID)
	}

	if campaign.Status != models.CampaignStatusScheduled {
		h.logger.Info("campaign %s is %s, nothing to dispatch", campaign.ID, campaign.Status)
		return nil
	}

	allowed, err := h.rateLimiter.Allow(ctx, campaign.ID)
	if err != nil {
		return h.logger.Error("rate limiter check failed for %s", err, campaign.ID)
	}
	if !allowed {
		// Retryable: asynq will back off and try again once the window clears.
		return fmt.Errorf("dispatch rate limit reached for campaign %s", campaign.ID)
	}

	if err := h.setCampaignStatus(ctx, campaign.ID, models.CampaignStatusRunning); err != nil {
		return err
	}

	settings, err := utils.JSONToMap(campaign.Settings)
	if err != nil {
		_ = h.setCampaignStatus(ctx, campaign.ID, models.CampaignStatusFailed)
		return fmt.Errorf("unreadable settings for campaign %s: %w: %w", campaign.ID, err, asynq.SkipRetry)
	}

	h.logger.Info("dispatching campaign %s (%d setting keys)", campaign.ID, len(settings))
	events.Emit("campaigns.dispatched", &campaign)

	// A recurring campaign goes back to scheduled and gets its next run
	// enqueued; a one-shot campaign completes.
	next := recurrence(settings)
	status := models.CampaignStatusCompleted
	if next != "" {
		status = models.CampaignStatusScheduled
	}
	if err := h.setCampaignStatus(ctx, campaign.ID, status); err != nil {
		return err
	}
	if next != "" {
		if err := h.taskClient.EnqueueCampaignRerun(campaign.ID, next); err != nil {
			h.logger.Warn("campaign %s rerun not enqueued: %v", campaign.ID, err)
		}
	}

	h.logger.Success("campaign %s dispatched", campaign.ID)
	return nil
}

// recurrence returns the cron expression a recurring campaign carries in its
// settings, or "" for a one-shot campaign.
func recurrence(settings map[string]interface{}) string {
	expr, _ := settings["recurrence"].(string)
	return strings.TrimSpace(expr)
}

func (h *TaskHandler) setCampaignStatus(ctx context.Context, id, status string) error {
	err := h.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return h.logger.Error("failed to move campaign %s to %s", err, id, status)
	}
	return nil
}

// HandleReminderScan finds tasks past their due date that are not done and
// emits an overdue event per task for downstream notification handlers.
func (h *TaskHandler) HandleReminderScan(ctx context.Context, t *asynq.Task) error {
	var overdue []models.Task
	err := h.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", time.Now(), models.TaskStatusDone).
		Find(&overdue).Error
	if err != nil {
		return h.logger.Error("reminder scan query failed", err)
	}

	for i := range overdue {
		events.Emit("task.overdue", &overdue[i])
	}

	if len(overdue) > 0 {
		h.logger.Info("reminder scan flagged %d overdue tasks", len(overdue))
	}
	return nil
}

// HandleAttachmentCleanup drops attachment rows that were never linked to a
// deal and have aged out. The object store copy is left to bucket lifecycle
// rules.
func (h *TaskHandler) HandleAttachmentCleanup(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().AddDate(0, 0, -30)

	result := h.db.WithContext(ctx).
		Where("deal_id IS NULL AND created_at < ?", cutoff).
		Delete(&models.Attachment{})
	if result.Error != nil {
		return h.logger.Error("attachment cleanup failed", result.Error)
	}

	if result.RowsAffected > 0 {
		h.logger.Info("cleaned up %d orphaned attachments", result.RowsAffected)
	}
	return nil
}
