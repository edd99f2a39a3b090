package main

import (
	"flag"
	"log"
	"os"

	"github.com/brishavK71/kafka-monitoring/config"
	"github.com/brishavK71/kafka-monitoring/internal/agent"
	"github.com/brishavK71/kafka-monitoring/pkg/logger"
)

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a dotenv config file")
	flag.Parse()

	cfg, err := config.New(*configFile)
	if err != nil {
		log.Printf("Config error: %s", err)
		os.Exit(agent.ExitConfig)
	}

	if err := logger.Setup(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.LogFormat == "console",
		File:    cfg.LogFile,
	}); err != nil {
		log.Printf("Logger error: %s", err)
		os.Exit(agent.ExitConfig)
	}

	os.Exit(agent.Run(cfg))
}
