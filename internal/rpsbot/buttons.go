package rpsbot

import (
	"strings"

	"github.com/bloops-games/rps/internal/resource"
	"github.com/bloops-games/rps/internal/rps"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const (
	CmdStart = "/start"
	CmdRules = "/rules"
	CmdReset = "/reset"
)

// callback data of inline buttons
const (
	dataStart       = "start"
	dataContinue    = "continue"
	dataRetry       = "retry"
	dataShapePrefix = "shape:"
)

var (
	startKeyboard = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(resource.TextStartBtn, dataStart)),
	)
	continueKeyboard = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(resource.TextContinueBtn, dataContinue)),
	)
	retryKeyboard = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(resource.TextRetryBtn, dataRetry)),
	)
)

func answerKeyboard(choices []rps.Shape) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, shape := range choices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(resource.ShapeEmoji(shape), dataShapePrefix+shape.String()))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// parseCallbackData maps button data to an intent kind
func parseCallbackData(data string) (intentKind, rps.Shape, bool) {
	switch data {
	case dataStart:
		return intentStart, 0, true
	case dataContinue:
		return intentContinue, 0, true
	case dataRetry:
		return intentRetry, 0, true
	}

	if strings.HasPrefix(data, dataShapePrefix) {
		shape, err := rps.ParseShape(strings.TrimPrefix(data, dataShapePrefix))
		if err != nil {
			return 0, 0, false
		}

		return intentAnswer, shape, true
	}

	return 0, 0, false
}
