//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL; reminders are then only logged.
func (c *NotifierConfig) Validate() error {
	return nil
}
