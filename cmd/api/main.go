package main

import (
	"log"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/bootstrap"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/config"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/server"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Printf("server error: %v", err)
	}
}
