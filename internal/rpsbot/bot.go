package rpsbot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

// Sender is the part of the telegram api a session talks to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
}

type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) (tgbotapi.UpdatesChannel, error)
}

var _ Bot = (*tgbotapi.BotAPI)(nil)
