package config

const (
	primindTasksURLEnv     = "PRIMIND_TASKS_URL"
	taskQueueNameEnv       = "TASK_QUEUE_NAME"
	taskQueueMaxRetriesEnv = "TASK_QUEUE_MAX_RETRIES"
	notifierRateEnv        = "NOTIFIER_RATE_PER_SECOND"
	gcloudProjectIDEnv     = "GCLOUD_PROJECT_ID"
	gcloudLocationIDEnv    = "GCLOUD_LOCATION_ID"
	gcloudQueueIDEnv       = "GCLOUD_QUEUE_ID"
	gcloudTargetURLEnv     = "GCLOUD_TARGET_URL"

	defaultQueueName  = "default"
	defaultMaxRetries = 3
	defaultRate       = 10
)

// NotifierConfig selects where reminder mails are enqueued.
type NotifierConfig struct {
	PrimindTasksURL string
	QueueName       string
	RatePerSecond   float64

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func loadNotifierConfig(src source) NotifierConfig {
	return NotifierConfig{
		PrimindTasksURL: src.get(primindTasksURLEnv),
		QueueName:       src.getOr(taskQueueNameEnv, defaultQueueName),
		RatePerSecond:   src.float(notifierRateEnv, defaultRate),

		GCloudProjectID:  src.get(gcloudProjectIDEnv),
		GCloudLocationID: src.get(gcloudLocationIDEnv),
		GCloudQueueID:    src.get(gcloudQueueIDEnv),
		GCloudTargetURL:  src.get(gcloudTargetURLEnv),

		MaxRetries: src.positiveInt(taskQueueMaxRetriesEnv, defaultMaxRetries),
	}
}
