package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobsy/config"
	"jobsy/internal/database"
	"jobsy/internal/mailer"
	"jobsy/internal/repository"
	"jobsy/internal/service"
	"jobsy/internal/ws"
)

// One-shot expiration sweep, meant to run from cron.
func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	listingRepo := repository.NewListingRepository(db)
	employerRepo := repository.NewEmployerRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password)
	}
	notifSvc := service.NewNotificationService(notificationRepo, employerRepo, userRepo, ws.NewHub(), mail)
	entitlementSvc := service.NewEntitlementService(employerRepo, listingRepo)
	lifecycleSvc := service.NewLifecycleService(listingRepo, employerRepo, notifSvc, entitlementSvc)
	sweepSvc := service.NewSweepService(listingRepo, lifecycleSvc, entitlementSvc, cfg.Sweep.BatchSize)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	result, err := sweepSvc.Run(ctx)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	fmt.Printf("scanned=%d expired=%d failed=%d entitlements_lost=%d\n",
		result.Scanned, result.Expired, result.Failed, result.EntitlementsLost)
}
