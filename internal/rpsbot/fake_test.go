package rpsbot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

type fakeBot struct {
	mtx       sync.Mutex
	messageID int
	sent      []tgbotapi.Chattable
	callbacks []tgbotapi.CallbackConfig
	updates   chan tgbotapi.Update
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update)}
}

var _ Bot = (*fakeBot)(nil)

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.sent = append(b.sent, c)
	b.messageID++
	return tgbotapi.Message{MessageID: b.messageID}, nil
}

func (b *fakeBot) AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.callbacks = append(b.callbacks, config)
	return tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(_ tgbotapi.UpdateConfig) (tgbotapi.UpdatesChannel, error) {
	return b.updates, nil
}

func (b *fakeBot) lastSent() tgbotapi.Chattable {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) lastCallback() tgbotapi.CallbackConfig {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if len(b.callbacks) == 0 {
		return tgbotapi.CallbackConfig{}
	}
	return b.callbacks[len(b.callbacks)-1]
}

func (b *fakeBot) sentCount() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return len(b.sent)
}

// chattableText returns the text and the inline keyboard of a sent or edited message
func chattableText(c tgbotapi.Chattable) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch msg := c.(type) {
	case tgbotapi.MessageConfig:
		if markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); ok {
			return msg.Text, &markup
		}
		return msg.Text, nil
	case tgbotapi.EditMessageTextConfig:
		return msg.Text, msg.ReplyMarkup
	}
	return "", nil
}

func buttonData(markup *tgbotapi.InlineKeyboardMarkup) []string {
	if markup == nil {
		return nil
	}

	var data []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				data = append(data, *btn.CallbackData)
			}
		}
	}
	return data
}
