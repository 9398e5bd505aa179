package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"petclassifier/internal/config"
	"petclassifier/internal/logging"
	"petclassifier/internal/ui"
	"petclassifier/processing/classifier"
)

func main() {
	cfg := config.LoadConfigFile(config.DefaultConfigPath)

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("source", string(cfg.GetSource())),
		zap.String("model_path", cfg.GetModelPath()),
	)

	adapter := classifier.NewAdapter(classifier.NewLoader(cfg.GetModelPath()), logger)

	proc := classifier.NewProcessor(adapter, logger)
	proc.Start()
	defer proc.Stop()

	app := ui.CreateApp(cfg, proc, logger)

	app.Run()
}
