package main

import (
	"flag"
	"log"
	"time"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/config"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/engine"
)

var (
	configPath string
	port       int
	modelDir   string
	workers    int
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file")
	flag.IntVar(&port, "port", 0, "HTTP server port (overrides config)")
	flag.StringVar(&modelDir, "models", "", "Voice model directory (overrides config)")
	flag.IntVar(&workers, "workers", 0, "Concurrent training jobs (overrides config)")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if modelDir != "" {
		cfg.Engine.ModelDir = modelDir
	}
	if workers != 0 {
		cfg.Engine.Workers = workers
	}

	eng, err := engine.New(
		engine.WithModelDir(cfg.Engine.ModelDir),
		engine.WithWorkers(cfg.Engine.Workers),
		engine.WithIterationDelay(time.Duration(cfg.Engine.IterationMillis)*time.Millisecond),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()

	server := NewServer(eng, cfg.Server)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
