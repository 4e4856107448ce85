package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/logger"
	"blog/internal/server"
	"blog/internal/session"
)

func main() {
	initDB := flag.Bool("init-db", false, "clear the existing data, create new tables, and exit")
	flag.Parse()

	log := logger.New(logger.Options{})
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database).Msg("open database")
	}
	defer database.Close()

	if *initDB {
		if err := db.Init(database); err != nil {
			log.Fatal().Err(err).Msg("init database")
		}
		fmt.Println("Initialized the database.")
		return
	}

	sessions := session.NewManager(cfg.SecretKey, cfg.SessionTTL)
	srv, err := server.New(database, sessions, log, "web/templates")
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
