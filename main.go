package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/opius2017/Finmfb-sub006/internal/config"
	"github.com/opius2017/Finmfb-sub006/internal/ledger"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/opius2017/Finmfb-sub006/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, the environment wins either way
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the directory the database file lives in
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	if err := models.Connect(cfg.DBPath); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, co, err := router.Router()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Automatic month-end rollover. The scheduler shares the ledger with
	// the HTTP handlers so that a scheduled close and an in-flight admit
	// serialize on the same per-month lock.
	if cfg.RolloverSchedule != "" {
		scheduler, err := ledger.NewRolloverScheduler(co.Ledger, cfg.RolloverSchedule)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
