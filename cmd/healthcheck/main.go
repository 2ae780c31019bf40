package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/carbonledger/carbonledger/internal/config"
	"github.com/carbonledger/carbonledger/internal/database"
	"github.com/carbonledger/carbonledger/internal/services"
	"github.com/carbonledger/carbonledger/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// Confirm the HTTP listener answers on its port
	if err := utils.PingServer("localhost", cfg.Port, 3*time.Second); err != nil {
		result.Status = "unhealthy"
		result.ErrorMessage = fmt.Sprintf("Server ping failed: %v", err)
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
