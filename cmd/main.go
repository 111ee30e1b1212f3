package main

import (
	"context"
	"os"

	"github.com/desertthunder/readlist/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(".env"); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Logger: shared.WithLogger(logger, "session", shared.GenerateID()),
		Input:  os.Stdin,
	})

	err := runner.App().Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Error("failed to close store", "error", cerr)
	}
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
