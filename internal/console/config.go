package console

import "time"

type Config struct {
	Debug        bool          `envconfig:"RPS_DEBUG" default:"false"`
	TickInterval time.Duration `envconfig:"RPS_TICK_INTERVAL" default:"100ms"`
	Rounds       int           `envconfig:"RPS_ROUNDS" default:"8"`
}
