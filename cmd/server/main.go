package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/tusfactus/factus/internal/config"
	"github.com/tusfactus/factus/internal/server"
)

func main() {
	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("listening on :%s (%s)", cfg.Port, cfg.Env)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
