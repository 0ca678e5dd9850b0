package main

import (
	"os"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("admin command failed")
		os.Exit(1)
	}
}
