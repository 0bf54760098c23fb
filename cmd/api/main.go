package main

import (
	"os"

	"github.com/upac/carnet-backend/internal/pkg/logger"
	"github.com/upac/carnet-backend/internal/server"
)

// @title Carnet UPAC API
// @version 1.0
// @description API for the UPAC student ID card portal: student records, card status, loans and exports

// @contact.name Bienestar Universitario
// @contact.email bienestar@upac.edu.co

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
