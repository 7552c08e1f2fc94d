package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/api"
	"github.com/courierapp/tripsync/internal/config"
	"github.com/courierapp/tripsync/internal/imaging"
	"github.com/courierapp/tripsync/internal/interactor"
	"github.com/courierapp/tripsync/internal/logger"
	"github.com/courierapp/tripsync/internal/observable"
	"github.com/courierapp/tripsync/internal/repository"
	"github.com/courierapp/tripsync/internal/storage"
	"github.com/courierapp/tripsync/internal/taskdomain"
	"github.com/courierapp/tripsync/internal/tracking"
)

const errorStreamCapacity = 16

func main() {
	log := logger.New()
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	domain := taskdomain.New(log)
	imagePool := taskdomain.NewPool(domain, 2)

	client := api.NewClient(cfg.BackendBaseURL, cfg.AuthToken, cfg.DeviceID, cfg.RequestTimeout, log)

	tripStore, err := storage.NewTripFileStore(cfg.TripsFilePath)
	if err != nil {
		log.Fatal("failed to open trip store", zap.Error(err))
	}

	journal, err := storage.OpenPhotoJournal(cfg.PhotoQueuePath)
	if err != nil {
		log.Fatal("failed to open photo journal", zap.Error(err))
	}
	defer journal.Close()

	var tracker tracking.Service
	var trackerCloser interface{ Close() error }
	if len(cfg.KafkaBrokers) > 0 && !cfg.TrackingStdout {
		kafkaTracker := tracking.NewKafkaService(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.DeviceID, log)
		tracker = kafkaTracker
		trackerCloser = kafkaTracker
	} else {
		tracker = tracking.NewConsoleService(log)
	}

	repo, err := repository.NewTripsRepository(client, tripStore, cfg.DeviceID, cfg.PickUpAllowed, log)
	if err != nil {
		log.Fatal("failed to init trips repository", zap.Error(err))
	}

	errs := observable.NewStream[error](errorStreamCapacity)

	queue := interactor.NewPhotoUploadQueue(client, journal, domain, interactor.RetryPolicy{
		RetryTimes:   cfg.RetryTimes,
		InitialDelay: cfg.RetryInitialDelay,
		Factor:       cfg.RetryFactor,
		MaxDelay:     cfg.RetryMaxDelay,
	}, errs, log)

	trips := interactor.NewTripsInteractor(repo, client, tracker, queue, imaging.NewFileDecoder(), domain, imagePool, errs, log)
	queue.SetUploadedHook(trips.OnPhotoUploaded)

	if err := queue.Start(); err != nil {
		log.Fatal("failed to start photo upload queue", zap.Error(err))
	}

	timer := interactor.NewRefreshTimer(cfg.RefreshInterval, trips.RefreshTripsSilently, domain, log)
	timer.RegisterObserver("agent")
	trips.RefreshTrips()

	domain.Go("error-stream-log", func(ctx context.Context) error {
		for {
			select {
			case err := <-trips.Errors().C():
				log.Warn("background sync failure", zap.Error(err))
			case <-ctx.Done():
				return nil
			}
		}
	})

	metricsServer := &http.Server{
		Addr:         ":9102",
		Handler:      promhttp.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	log.Info("tripsync agent started",
		zap.String("device_id", cfg.DeviceID),
		zap.Duration("refresh_interval", cfg.RefreshInterval))

	<-ctx.Done()
	log.Info("shutting down")

	timer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	_ = metricsServer.Shutdown(shutdownCtx)
	domain.Shutdown(shutdownCtx)
	if trackerCloser != nil {
		_ = trackerCloser.Close()
	}

	log.Info("shutdown complete")
}
