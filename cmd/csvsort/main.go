package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/OrionFLASH/Sort-SPOD-CSV-for-look-Change/internal/config"
	"github.com/OrionFLASH/Sort-SPOD-CSV-for-look-Change/internal/pkg/logger"
	"github.com/OrionFLASH/Sort-SPOD-CSV-for-look-Change/internal/sorter"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML configuration file")
	verbose := flag.Bool("v", false, "also print DEBUG entries to the console")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create working directories: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		logger.SetConsoleLevel(logger.DEBUG)
	}
	if err := logger.Setup(cfg.LogFile()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.Info("logging configured", "log_file", cfg.LogFile())
	logger.Info("directories ready", "input", cfg.InputDir(), "output", cfg.OutputDir())

	batch := sorter.New(batchConfig(cfg), logger.Default())
	if _, err := batch.Run(); err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}
}

func batchConfig(cfg *config.Config) sorter.Config {
	fields := make([]sorter.FieldSpec, len(cfg.Sort.Fields))
	for i, f := range cfg.Sort.Fields {
		fields[i] = sorter.FieldSpec{
			Name:  f.Name,
			Type:  sorter.FieldType(f.Type),
			Order: sorter.Order(f.Order),
		}
	}
	return sorter.Config{
		InputDir:   cfg.InputDir(),
		OutputDir:  cfg.OutputDir(),
		InputFiles: cfg.InputFiles,
		Delimiter:  cfg.Sort.DelimiterRune(),
		Fields:     fields,
		Order:      sorter.Order(cfg.Sort.Order),
	}
}
