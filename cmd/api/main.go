package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/ishanichuri/portfolio/config"
	"github.com/ishanichuri/portfolio/internal/bootstrap"
	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/media"
	"github.com/ishanichuri/portfolio/internal/metrics"
	"github.com/ishanichuri/portfolio/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logger := logging.New(logging.Options{
		Service:     cfg.App.Name,
		Environment: cfg.App.Environment,
		Level:       cfg.App.LogLevel,
		File:        cfg.App.LogFile,
	})
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	// AWS config is loaded at most once and only when something needs it.
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		ac, err := bootstrap.LoadAWS(ctx, cfg.Data.AWSRegion)
		if err != nil {
			return aws.Config{}, err
		}
		awsCfg = &ac
		return ac, nil
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, serving without cache")
		rdb = nil
	}

	store, err := bootstrap.OpenStore(ctx, cfg, loadAWS, rdb)
	if err != nil {
		logger.WithError(err).Fatal("open project store")
	}
	defer store.Close()

	verifier, err := bootstrap.BuildVerifier(ctx, cfg.Auth)
	if err != nil {
		logger.WithError(err).Fatal("auth verifier")
	}
	if verifier == nil {
		logger.Warn("auth disabled: requests run as the local identity")
	}

	deps := bootstrap.RouterDeps{
		ServiceName:  cfg.App.Name,
		Version:      cfg.App.Version,
		Logger:       logger,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Repo:         store.Repo,
		Verifier:     verifier,
		MediaBaseURL: cfg.Media.BaseURL,
		ViewsPerMin:  cfg.Metrics.ViewRatePerMin,
	}

	if ac, err := loadAWS(); err != nil {
		logger.WithError(err).Warn("aws config unavailable: uploads and view metrics disabled")
	} else {
		if cfg.Media.BucketName != "" {
			deps.Presigner = media.NewS3Presigner(s3.NewFromConfig(ac), cfg.Media.BucketName, cfg.Media.PresignExpires)
		}
		deps.Views = metrics.NewCloudWatchPublisher(cloudwatch.NewFromConfig(ac), metrics.CloudWatchOptions{
			Namespace:   cfg.Metrics.Namespace,
			MetricName:  cfg.Metrics.ViewMetricName,
			Environment: cfg.Metrics.DeploymentEnv,
		})
	}

	if store.Cache != nil {
		warm, err := scheduler.New(cfg.Redis.WarmSpec, store.Cache)
		if err != nil {
			logger.WithError(err).Fatal("cache warm schedule")
		}
		warm.RunOnce()
		warm.Start()
		defer warm.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	waitForShutdown(logger, srv)
}

func waitForShutdown(logger *logrus.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown error")
	}
}
