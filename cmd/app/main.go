package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"storefront/cmd"
	adapterhttp "storefront/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := cmd.LoadConfig()

	if _, err := configs.Validate(context.Background(), logger, true); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gormDB, err := openDatabase(configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server, err := root.CreateWebServer()
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	startWebServer(server, configs.HTTPPort)
}

func openDatabase(host, port, user, password, dbname, sslmode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func startWebServer(server *adapterhttp.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
