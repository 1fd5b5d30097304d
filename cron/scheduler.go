package cron

import (
	"log"

	"github.com/robfig/cron/v3"
)

// StartCron launches the scheduler with every registered job.
func StartCron() *cron.Cron {
	c := cron.New()
	for name, j := range Jobs() {
		run := j.Run
		_, err := c.AddFunc(j.Schedule, func() { run() })
		if err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	c.Start()
	return c
}
