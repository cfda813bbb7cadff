package main

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shearluck21/todo-wo-tracker/pkg/board"
	"github.com/shearluck21/todo-wo-tracker/pkg/config"
	"github.com/shearluck21/todo-wo-tracker/pkg/controller"
	"github.com/shearluck21/todo-wo-tracker/pkg/db"
	"github.com/shearluck21/todo-wo-tracker/pkg/duedate"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadOrCreate(config.DefaultConfigFileName)
	if err != nil {
		panic(err)
	}

	filePerms := 0o666

	// the UI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("domain", cfg.Domain).Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.DBPath)
	if err != nil {
		panic(err)
	}

	defer database.Close()

	clock := duedate.SystemClock()
	b := board.New(ctx, cfg.Domain, database, clock)

	c, err := controller.NewController(ctx, cfg.Domain, b, clock)
	if err != nil {
		panic(err)
	}

	scheduler := board.NewScheduler(b, clock, c.Redraw)
	scheduler.Start(ctx)

	defer scheduler.Stop()

	c.Go()
}
