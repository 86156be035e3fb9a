package config

// Kafka is optional for the console: with no addresses activity events are dropped.
type Kafka struct {
	Addresses     []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	Group         string   `env:"KAFKA_GROUP" envDefault:"inventory-console"`
	ActivityTopic string   `env:"KAFKA_ACTIVITY_TOPIC" envDefault:"inventory.console.activity"`
}

// Enabled reports whether any broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
