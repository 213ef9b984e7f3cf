package config

const (
	EnvAdminKey = "ADMIN_KEY"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvBlobDriver        = "BLOB_DRIVER"
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvBookingEventsTopic = "KAFKA_BOOKING_EVENTS_TOPIC"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
