package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carteira-app/finance-server/api"
	"github.com/carteira-app/finance-server/internal/cache"
	"github.com/carteira-app/finance-server/internal/config"
	"github.com/carteira-app/finance-server/internal/logging"
	"github.com/carteira-app/finance-server/internal/operator"
	"github.com/carteira-app/finance-server/internal/reports"
	"github.com/carteira-app/finance-server/internal/service"
	"github.com/carteira-app/finance-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)
	svc := service.NewService(dbStorage)

	var existsCache cache.Cache
	existsCache, err = cache.NewRedis(envConfig.RedisAddress, envConfig.RedisPassword)
	if err != nil {
		logrus.WithError(err).Warn("cache.NewRedis unavailable, using in-memory cache")
		existsCache = cache.NewMemory()
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	taskStore := reports.NewTaskStore()
	pipeline := reports.NewPipeline(
		reports.NewGenerator(dbStorage),
		taskStore,
		envConfig.ReportWorkers,
		envConfig.ReportQueueSize,
	)
	pipeline.Start()
	defer pipeline.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Operator: delegator,
			Cache:    existsCache,
			Pipeline: pipeline,
			Tasks:    taskStore,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
