package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const configFileEnv = "FEEDING_CONFIG_FILE"

// fileConfig is the YAML layout of FEEDING_CONFIG_FILE. Every value can be
// overridden by the environment variable it maps to.
type fileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       string `yaml:"db"`
		TLS      string `yaml:"tls"`
	} `yaml:"redis"`

	Database struct {
		Path     string `yaml:"path"`
		SeedFile string `yaml:"seed_file"`
	} `yaml:"database"`

	Dispatch struct {
		Cron            string `yaml:"cron"`
		WindowMinutes   string `yaml:"window_minutes"`
		ClaimTTL        string `yaml:"claim_ttl"`
		MaxRunDuration  string `yaml:"max_run_duration"`
		MarkerRetention string `yaml:"marker_retention"`
	} `yaml:"dispatch"`

	Feeding struct {
		Timezone           string `yaml:"timezone"`
		NearWindowMinutes  string `yaml:"near_window_minutes"`
		EarlyWindowMinutes string `yaml:"early_window_minutes"`
		SessionLatchTTL    string `yaml:"session_latch_ttl"`
	} `yaml:"feeding"`

	Notifier struct {
		PrimindTasksURL  string `yaml:"primind_tasks_url"`
		QueueName        string `yaml:"queue_name"`
		MaxRetries       string `yaml:"max_retries"`
		RatePerSecond    string `yaml:"rate_per_second"`
		GCloudProjectID  string `yaml:"gcloud_project_id"`
		GCloudLocationID string `yaml:"gcloud_location_id"`
		GCloudQueueID    string `yaml:"gcloud_queue_id"`
		GCloudTargetURL  string `yaml:"gcloud_target_url"`
	} `yaml:"notifier"`
}

func loadFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigFile, path, err)
	}

	values := map[string]string{
		portEnv:     fc.Port,
		logLevelEnv: fc.LogLevel,

		redisAddrEnv:     fc.Redis.Addr,
		redisPasswordEnv: fc.Redis.Password,
		redisDBEnv:       fc.Redis.DB,
		redisTLSEnv:      fc.Redis.TLS,

		databasePathEnv: fc.Database.Path,
		seedFileEnv:     fc.Database.SeedFile,

		dispatchCronEnv:            fc.Dispatch.Cron,
		dispatchWindowMinutesEnv:   fc.Dispatch.WindowMinutes,
		dispatchClaimTTLEnv:        fc.Dispatch.ClaimTTL,
		dispatchMaxRunDurationEnv:  fc.Dispatch.MaxRunDuration,
		dispatchMarkerRetentionEnv: fc.Dispatch.MarkerRetention,

		feedingTimezoneEnv:           fc.Feeding.Timezone,
		feedingNearWindowMinutesEnv:  fc.Feeding.NearWindowMinutes,
		feedingEarlyWindowMinutesEnv: fc.Feeding.EarlyWindowMinutes,
		feedingSessionLatchTTLEnv:    fc.Feeding.SessionLatchTTL,

		primindTasksURLEnv:     fc.Notifier.PrimindTasksURL,
		taskQueueNameEnv:       fc.Notifier.QueueName,
		taskQueueMaxRetriesEnv: fc.Notifier.MaxRetries,
		notifierRateEnv:        fc.Notifier.RatePerSecond,
		gcloudProjectIDEnv:     fc.Notifier.GCloudProjectID,
		gcloudLocationIDEnv:    fc.Notifier.GCloudLocationID,
		gcloudQueueIDEnv:       fc.Notifier.GCloudQueueID,
		gcloudTargetURLEnv:     fc.Notifier.GCloudTargetURL,
	}

	for k, v := range values {
		if v == "" {
			delete(values, k)
		}
	}
	return values, nil
}
