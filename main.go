package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"

	"posapi/src/apperrors"
	"posapi/src/database"
	"posapi/src/logging"
	"posapi/src/notifier"
	"posapi/src/redact"
	"posapi/src/repository"
	"posapi/src/server"
	"posapi/src/workers"
)

var APP_NAME = os.Getenv("APP_NAME")

func main() {
	// Optional .env for local development; the real environment wins.
	_ = godotenv.Load()

	defer handlePanic()

	filter := redact.NewDefaultFilter()
	if err := logging.Setup(logging.GetConfig(), filter); err != nil {
		logger.WithError(err).Fatal("Failed to set up logging")
	}

	hub := logging.NewHub()
	logger.AddHook(logging.NewStreamHook(hub))

	if err := database.InitMainDB(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	alerts := notifier.NewClient(notifier.GetConfig())
	recorder := logging.NewRecorder(filter, repository.NewErrorLogRepository(), alerts)

	errorsConfig := apperrors.GetConfig()
	if errorsConfig.VerboseErrors {
		logger.Warn("VERBOSE_ERRORS enabled; responses will carry raw detail. Never run production like this.")
	}
	mapper := apperrors.NewMapper(errorsConfig.VerboseErrors, logger.StandardLogger(), recorder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retention := workers.NewRetentionLoop(repository.NewErrorLogRepository(), workers.GetConfig())
	go func() {
		if err := retention.Start(ctx); err != nil {
			logger.WithError(err).Error("retention loop exited")
		}
	}()

	server.StartServer(server.GetConfig().Port, mapper, hub)
}

func handlePanic() {
	if r := recover(); r != nil {
		logger.WithError(fmt.Errorf("%+v", r)).Error(fmt.Sprintf("Application %s panic", APP_NAME))
	}
	//nolint
	time.Sleep(time.Second * 5)
}
