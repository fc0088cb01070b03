package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipping/cmd"
	httpadapter "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/carrierrepo"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := connectDatabase(configs)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Composition root setup failed: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Job startup failed: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAssignCarrierCommandHandler(),
		root.CreateUpdateOrderCommandHandler(),
		root.CreateCreateShipmentCommandHandler(),
		root.CreateConfirmDeliveryCommandHandler(),
		root.CreateReportAnomalyCommandHandler(),
		root.CreateReconcileShipmentCommandHandler(),
		root.CreateGetOrderByTrackingIDQueryHandler(),
		root.CreateGetCustomerOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil {
			logger.Info("HTTP server stopped", "error", startErr)
		}
	}()

	waitForShutdown(e, jobManager, &root, logger)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaNotificationTopic:  goDotEnvVariable("KAFKA_NOTIFICATION_TOPIC"),
		RedisHost:               goDotEnvVariable("REDIS_HOST"),
		TrackingCacheTTLSeconds: goDotEnvVariable("TRACKING_CACHE_TTL_SECONDS"),
		WarehouseStaffIDs:       goDotEnvVariable("WAREHOUSE_STAFF_IDS"),
		CustomerServiceRepIDs:   goDotEnvVariable("CUSTOMER_SERVICE_REP_IDS"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// connectDatabase opens the database through the lib/pq driver so that
// driver-level errors keep their Postgres error codes, then hands the
// connection to GORM.
func connectDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&shipmentrepo.ShipmentDTO{},
		&carrierrepo.CarrierDTO{},
		&carrierrepo.DriverDTO{},
	); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func waitForShutdown(e *echo.Echo, jobManager *jobs.JobManager, root *cmd.CompositionRoot, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}

	if err := root.Close(); err != nil {
		logger.Error("Notifier shutdown failed", "error", err)
	}
}
