package tasks

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"pipecrm/internal/events"
	"pipecrm/internal/models"
	console "pipecrm/internal/utils/logger"
)

// TaskClient handles task enqueuing with improved error handling and context support
type TaskClient struct {
	client       *asynq.Client
	logger       *console.Logger
	redisOptions *redis.Options
	redisClient  *redis.Client
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

func (c *TaskClient) GetRedisClient() *redis.Client {
	return c.redisClient
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(
		&redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)

	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		redisOptions: &redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		redisClient: redisClient,
		logger:      console.New("TASKS"),
	}
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}

// EnqueueCampaignDispatch schedules a dispatch run for a campaign. When the
// campaign carries a future ScheduledFor, the task is deferred to that time.
func (c *TaskClient) EnqueueCampaignDispatch(campaign *models.Campaign) error {
	payload, err := marshalPayload(CampaignDispatchPayload{CampaignID: campaign.ID})
	if err != nil {
		return err
	}

	opts := []asynq.Option{
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutMedium),
		asynq.TaskID("campaign:dispatch:" + campaign.ID), // dedupe reschedules
	}
	if campaign.ScheduledFor != nil && campaign.ScheduledFor.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(*campaign.ScheduledFor))
	}

	info, err := c.client.Enqueue(asynq.NewTask(TaskTypeCampaignDispatch, payload), opts...)
	if err != nil {
		return c.logger.Error("failed to enqueue dispatch for campaign %s", err, campaign.ID)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", info.Type, info.ID, info.Queue)
	return nil
}

// EnqueueCampaignRerun schedules the next run of a recurring campaign at the
// next time matching its cron expression. No task id is set: the current run
// is still active, and reruns of a deleted campaign skip harmlessly.
func (c *TaskClient) EnqueueCampaignRerun(campaignID, expr string) error {
	payload, err := marshalPayload(CampaignDispatchPayload{CampaignID: campaignID})
	if err != nil {
		return err
	}

	info, err := c.client.Enqueue(asynq.NewTask(TaskTypeCampaignDispatch, payload),
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutMedium),
		asynq.ProcessAt(NextCronRun(expr, time.Hour)),
	)
	if err != nil {
		return c.logger.Error("failed to enqueue rerun for campaign %s", err, campaignID)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", info.Type, info.ID, info.Queue)
	return nil
}

// WatchCampaigns wires campaign create/update events into the queue: any
// campaign that lands in the scheduled state gets a dispatch task.
func (c *TaskClient) WatchCampaigns() {
	handler := func(data interface{}) {
		campaign, ok := data.(*models.Campaign)
		if !ok || campaign.Status != models.CampaignStatusScheduled {
			return
		}
		if err := c.EnqueueCampaignDispatch(campaign); err != nil {
			c.logger.Warn("campaign %s not enqueued: %v", campaign.ID, err)
		}
	}

	events.On("campaigns.created", handler)
	events.On("campaigns.updated", handler)
}
