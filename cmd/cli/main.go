package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/engine"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/internal/model"
	"github.com/NavyaSreeBandaru7/Voice-Cloning-Text-to-Speech/pkg/logger"
)

var (
	modelDir string
	workers  int
)

func init() {
	flag.StringVar(&modelDir, "models", getEnvOrDefault("VOICECLONE_MODEL_DIR", "models"), "Voice model directory")
	flag.IntVar(&workers, "workers", 4, "Concurrent training jobs")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func createEngine() (*engine.Engine, error) {
	return engine.New(
		engine.WithModelDir(modelDir),
		engine.WithWorkers(workers),
	)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "train":
		handleTrain(os.Args[2:])
	case "list":
		handleList()
	case "show":
		handleShow(os.Args[2:])
	case "delete":
		handleDelete(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voiceclone - voice profile training

Usage:
  voiceclone train -name NAME [-quality TIER] [-language LANG] FILE...
  voiceclone list
  voiceclone show JOB_ID
  voiceclone delete JOB_ID

Quality tiers: draft, standard, high, premium`)
}

func handleTrain(args []string) {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	name := fs.String("name", "", "Voice name (required)")
	quality := fs.String("quality", "standard", "Quality tier")
	language := fs.String("language", "en-US", "Voice language")
	fs.Parse(args)

	files := fs.Args()
	if *name == "" || len(files) == 0 {
		fmt.Println("train requires -name and at least one audio file")
		os.Exit(1)
	}

	log := logger.GetLogger()
	eng, err := createEngine()
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	jobID, err := eng.Submit(files, *name, model.Quality(*quality), *language)
	if err != nil {
		log.Fatalf("Failed to submit training job: %v", err)
	}
	log.Infof("Training job %s started", jobID)

	// Poll until the job reaches a terminal state.
	for {
		job, err := eng.Status(jobID)
		if err != nil {
			log.Fatalf("Failed to read job status: %v", err)
		}
		fmt.Printf("\r%-35s %3.0f%%", job.CurrentStage, job.Progress)
		if job.Status.Terminal() {
			fmt.Println()
			switch job.Status {
			case model.StatusCompleted:
				log.Infof("Voice model %s ready (quality score %.3f)", job.ModelID, job.QualityScore)
			case model.StatusFailed:
				log.Fatalf("Training failed: %s", job.Error)
			case model.StatusCancelled:
				log.Warnf("Training cancelled")
			}
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	eng.Close()
}

func handleList() {
	log := logger.GetLogger()
	eng, err := createEngine()
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	models, err := eng.ListModels()
	if err != nil {
		log.Fatalf("Failed to list voice models: %v", err)
	}
	if len(models) == 0 {
		fmt.Println("No voice models found")
		return
	}

	fmt.Printf("%-38s %-20s %-8s %-10s %s\n", "ID", "NAME", "LANG", "QUALITY", "SCORE")
	for _, m := range models {
		fmt.Printf("%-38s %-20s %-8s %-10s %.3f\n",
			m.ID, m.VoiceName, m.Language, m.Quality, m.QualityScore)
	}
}

func handleShow(args []string) {
	if len(args) < 1 {
		fmt.Println("show requires a job id")
		os.Exit(1)
	}

	log := logger.GetLogger()
	eng, err := createEngine()
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	m, err := eng.LoadModel(args[0])
	if err != nil {
		log.Fatalf("Failed to load voice model: %v", err)
	}

	fmt.Printf("Voice:      %s (%s, %s)\n", m.VoiceName, m.Language, m.Quality)
	fmt.Printf("Score:      %.3f\n", m.QualityScore)
	fmt.Printf("Trained on: %.1fs of audio\n", m.TotalDurationSeconds)
	fmt.Printf("F0:         %.1f Hz\n", m.Profile.FundamentalFrequency)
	fmt.Printf("Formants:   %v\n", m.Profile.Formants)
	fmt.Printf("Created:    %s\n", m.CreatedAt.Format(time.RFC3339))
}

func handleDelete(args []string) {
	if len(args) < 1 {
		fmt.Println("delete requires a job id")
		os.Exit(1)
	}

	log := logger.GetLogger()
	eng, err := createEngine()
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	removed, err := eng.DeleteModel(args[0])
	if err != nil {
		log.Fatalf("Failed to delete voice model: %v", err)
	}
	if !removed {
		fmt.Printf("No voice model found for %s\n", args[0])
		os.Exit(1)
	}
	fmt.Printf("Deleted voice model %s\n", args[0])
}
