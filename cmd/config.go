package cmd

import "time"

// Config carries all runtime settings of the service, read from the
// environment by cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AuthSecret signs and verifies bearer tokens.
	AuthSecret string

	KafkaHost             string
	KafkaStatusEventTopic string

	// CompletionGrace is how long a delivered shipment stays open before the
	// background sweep closes it.
	CompletionGrace time.Duration
}
