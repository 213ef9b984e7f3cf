package main

import (
	"context"

	"classbook/internal/bookings/events"
	"classbook/internal/bookings/handler"
	"classbook/internal/bookings/service"
	"classbook/internal/bookings/validator"
	"classbook/pkg/app"
	"classbook/pkg/blob"
	"classbook/pkg/config"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	store := initStore(cfg)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.Log)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingService := service.NewBookingService(store, bookingValidator, publisher, cfg)

	router := httprouter.New()
	handler.NewBookingHandler(bookingService, cfg.Log).RegisterRoutes(router)
	handler.NewHealthHandler(store, cfg.Log).RegisterRoutes(router)

	serverApp := app.NewApplication(cfg)
	serverApp.SetHandler(router)

	cfg.Log.Info("Starting bookings service")
	serverApp.Run()
}

func initStore(cfg *config.Config) blob.Store {
	if cfg.BlobDriver == config.DriverMemory {
		cfg.Log.Warn("Using the in-memory blob store, bookings will not survive a restart")
		return blob.NewMemoryStore()
	}

	client, err := blob.Connect(context.Background(), cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to the blob store", "error", err)
	}
	cfg.Log.Info("Connected to MongoDB", "database", cfg.MongoDatabaseName)

	db := client.Database(cfg.MongoDatabaseName)
	return blob.NewMongoStore(db, config.BookingsNamespace, cfg.ReadTimeout, cfg.WriteTimeout)
}
