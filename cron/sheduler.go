package cron

import (
	"fmt"
	"log"
	"slices"

	"github.com/robfig/cron/v3"

	"storefront.GO/config"
)

// NewScheduler builds a scheduler holding every registered job. A job's
// schedule can be overridden with CRON_<NAME>. Panics inside a job are
// recovered and logged.
func NewScheduler() (*cron.Cron, error) {
	logger := cron.VerbosePrintfLogger(log.Default())
	c := cron.New(cron.WithChain(cron.Recover(logger)))
	jobs := Jobs()
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		j := jobs[name]
		run := j.Run
		sched := config.CronSchedule(name, j.Schedule)
		if _, err := c.AddFunc(sched, func() { run() }); err != nil {
			return nil, fmt.Errorf("cron job %s: schedule %q: %w", name, sched, err)
		}
		log.Printf("[cron] %s scheduled %q", name, sched)
	}
	return c, nil
}

func StartCron() *cron.Cron {
	c, err := NewScheduler()
	if err != nil {
		log.Fatalf("Failed to register job: %v", err)
	}
	c.Start()
	return c
}
