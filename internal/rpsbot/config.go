package rpsbot

import "time"

type Config struct {
	// Logging all requests and responses from telegram
	Debug bool `envconfig:"RPS_DEBUG" default:"false"`

	// Number of chat sessions kept in memory, the least recently used one is stopped first
	CacheSize int `envconfig:"RPS_CACHE_SIZE" default:"1024"`

	// Port on which health check is launched
	Port string `envconfig:"RPS_PORT" default:"1234"`

	// Telegram bot token
	BotToken string `envconfig:"RPS_BOT_TOKEN"`

	// Inactive sessions are stopped after this time
	PlayingTimeout   time.Duration `envconfig:"RPS_PLAYING_TIMEOUT" default:"30m"`
	TgBotPollTimeout time.Duration `envconfig:"RPS_TG_BOT_POLL_TIMEOUT" default:"60s"`

	// Game clock granularity
	TickInterval time.Duration `envconfig:"RPS_TICK_INTERVAL" default:"100ms"`

	// Answers per game
	Rounds int `envconfig:"RPS_ROUNDS" default:"8"`
}
