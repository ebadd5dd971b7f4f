package config

import "strings"

// CronSchedule returns the schedule for a cron job, overridable per job with
// CRON_<NAME> (upper-cased job name).
func CronSchedule(name, def string) string {
	return GetEnv("CRON_"+strings.ToUpper(name), def)
}
