package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/temirov/gather/internal/cli"
	"github.com/temirov/gather/internal/services/clipboard"
	"github.com/temirov/gather/internal/utils"
)

// main is the entry point for the gather command.
func main() {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() {
		_ = loggerInstance.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	applicationExecutionError := cli.Execute(ctx, cli.Dependencies{
		Logger:    loggerInstance,
		LogLevel:  logLevel,
		Clipboard: clipboard.NewService(),
	})
	if applicationExecutionError != nil {
		stop()
		loggerInstance.Fatal(cli.DiagnosticMessage(applicationExecutionError))
	}
}
