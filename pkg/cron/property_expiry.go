package cron

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"imoveisuniao_backend/internal/service"
)

// InitPropertyExpiryCron flips active listings past their deadline to
// expired, once a day shortly after midnight.
func InitPropertyExpiryCron(properties *service.PropertyService) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("5 0 * * *", func() {
		expirePastDeadline(properties)
	})
	if err != nil {
		log.Printf("Could not initialize property expiry cron: %v", err)
		return c
	}

	c.Start()
	return c
}

func expirePastDeadline(properties *service.PropertyService) {
	count, err := properties.ExpireOverdue(context.Background())
	if err != nil {
		log.Printf("Error expiring overdue properties: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Expired %d overdue properties", count)
	}
}
