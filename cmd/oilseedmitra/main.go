package main

import (
	"log"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/app"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/config"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Close()

	if err := app.Run(cfg, zl); err != nil {
		zl.Fatalw("app exited", "error", err)
	}
}
