// gym-mockapi is a local development server for the gymctl CLI. It serves
// fixture data over the same HTTP surface as the real platform.
//
// Seeded accounts:
//
//	admin@gymstack.local  / admin123
//	coach@gymstack.local  / coach123
//	member@gymstack.local / member123
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/gymstack/gymctl/internal/mockapi"
	"github.com/gymstack/gymctl/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	secret := os.Getenv("MOCKAPI_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}

	level := os.Getenv("MOCKAPI_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	log := logger.New(logger.Config{Level: level, Format: "console"})
	srv := mockapi.NewServer(secret, log)

	log.Infof("mock API listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
