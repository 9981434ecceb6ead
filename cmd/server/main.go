package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"campervan/internal/api"
	"campervan/internal/config"
	"campervan/internal/logging"
	"campervan/internal/repository"
	"campervan/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	stationRepo := repository.NewStationRepository(repository.DefaultStations())
	bookingRepo := repository.NewBookingRepository(repository.DefaultBookings())

	notifier := service.NewNotifyServiceFromConfig(cfg, log)
	stationSvc := service.NewStationService(stationRepo)
	bookingSvc := service.NewBookingService(bookingRepo, stationRepo, notifier, log)
	jobSvc := service.NewJobService(bookingRepo, log)

	accessLog := log.Writer()
	defer accessLog.Close()

	router := api.NewRouter(cfg, api.NewStationHandler(stationSvc), api.NewBookingHandler(bookingSvc), log, accessLog)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var scheduler *cron.Cron
	if cfg.CompletionJob != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.CompletionJob, func() {
			jobSvc.CompleteFinishedBookings(time.Now().UTC())
		}); err != nil {
			log.WithError(err).Fatalf("Invalid BOOKING_COMPLETION_CRON %q", cfg.CompletionJob)
		}
		scheduler.Start()
		log.Infof("Booking completion job scheduled: %s", cfg.CompletionJob)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		err := srv.Shutdown(shutdownCtx)
		notifier.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
}
