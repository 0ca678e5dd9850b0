package main

import (
	"context"
	"os"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/config"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/server"
)

// @title PWIOI Club API
// @version 1.0
// @description Class scheduling and curriculum progress (CPR) API

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer(context.Background(), config.GetEnv("CONFIG_PATH", ""))
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
