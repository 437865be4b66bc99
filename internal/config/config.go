package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Redis struct {
		Host              string `env:"HOST" envDefault:"localhost"`
		Port              int    `env:"PORT" envDefault:"6379"`
		Password          string `env:"PASSWORD,required"`
		InsightExpiration int    `env:"INSIGHT_EXPIRATION" envDefault:"3600"` // seconds
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	// Solver weighting is configuration rather than constants: the
	// priority-to-weight mapping below combines constraint sub-scores into
	// the aggregate confidence score. Defaults: low 0.5, medium 1.0,
	// high 2.0, critical 4.0, validity floor 0.3.
	Solver struct {
		WeightLow       float64 `env:"WEIGHT_LOW" envDefault:"0.5"`
		WeightMedium    float64 `env:"WEIGHT_MEDIUM" envDefault:"1.0"`
		WeightHigh      float64 `env:"WEIGHT_HIGH" envDefault:"2.0"`
		WeightCritical  float64 `env:"WEIGHT_CRITICAL" envDefault:"4.0"`
		ValidityFloor   float64 `env:"VALIDITY_FLOOR" envDefault:"0.3"`
		DefaultMaxHours float64 `env:"DEFAULT_MAX_HOURS" envDefault:"48"`
	} `envPrefix:"SOLVER_"`
	Collab struct {
		LockTimeout    int `env:"LOCK_TIMEOUT" envDefault:"30"`   // seconds
		ConflictWindow int `env:"CONFLICT_WINDOW" envDefault:"5"` // seconds
		SendBuffer     int `env:"SEND_BUFFER" envDefault:"32"`
	} `envPrefix:"COLLAB_"`
	AI struct {
		Enabled  bool   `env:"ENABLED" envDefault:"false"`
		Endpoint string `env:"ENDPOINT" envDefault:""`
		APIKey   string `env:"API_KEY" envDefault:""`
		Timeout  int    `env:"TIMEOUT" envDefault:"10"`
	} `envPrefix:"AI_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
