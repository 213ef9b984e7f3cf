package config

import "time"

const (
	// DefaultAdminKey is a developer-convenience fallback only. Running
	// with it in production leaves the admin surface open to anyone who
	// reads the source; Load warns loudly when it is in use.
	DefaultAdminKey = "sarayoga2026"

	DefaultPort = "8080"

	DriverMongo  = "mongo"
	DriverMemory = "memory"

	DefaultBlobDriver        = DriverMongo
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "classbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	// BookingsNamespace is the single logical namespace holding one
	// record per classId.
	BookingsNamespace = "bookings"

	DefaultBookingEventsTopic = "classbook.booking-events"

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
