package rpsbot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/bloops-games/rps/internal/cache"
	"github.com/bloops-games/rps/internal/logging"
	"github.com/bloops-games/rps/internal/resource"
	"github.com/bloops-games/rps/internal/rps"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"golang.org/x/sync/errgroup"
)

const cleaningInterval = 1 * time.Minute

func NewManager(tg Bot, config *Config) (*Manager, error) {
	m := &Manager{tg: tg, config: config, newChooser: func() rps.Chooser { return rps.FastRand{} }}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	sessions, err := cache.NewLRU(config.CacheSize, m.evict)
	if err != nil {
		return nil, fmt.Errorf("can not create lru cache: %w", err)
	}

	m.sessions = sessions
	return m, nil
}

type Manager struct {
	mtx sync.Mutex

	tg     Bot
	config *Config
	// key: chat id, value: *Session
	sessions cache.Cache
	// stopped sessions waiting for their loop to exit
	stopping sync.WaitGroup

	newChooser func() rps.Chooser
	ctx        context.Context
	cancel     func()
}

func (m *Manager) Stop() {
	m.cancel()
}

func (m *Manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.ctx = ctx
	m.cancel = cancel
	defer cancel()

	upd := tgbotapi.NewUpdate(0)
	upd.Timeout = int(m.config.TgBotPollTimeout.Seconds())
	updates, err := m.tg.GetUpdatesChan(upd)
	if err != nil {
		return fmt.Errorf("tg get updates chan: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(func() error {
			m.pool(ctx, updates)
			return nil
		})
	}

	g.Go(func() error {
		m.cleaning(ctx)
		return nil
	})

	err = g.Wait()
	m.shutdown()

	return err
}

func (m *Manager) pool(ctx context.Context, updCh tgbotapi.UpdatesChannel) {
	logger := logging.FromContext(ctx).Named("manager.pool")
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updCh:
			if !ok {
				return
			}

			if err := m.handleUpdate(ctx, update); err != nil {
				logger.Errorf("handle update %d: %v", update.UpdateID, err)
			}
		}
	}
}

func (m *Manager) handleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	if upd.Message != nil && upd.Message.Chat != nil {
		if upd.Message.Chat.IsGroup() || upd.Message.Chat.IsSuperGroup() {
			if err := m.sendText(upd.Message.Chat.ID, resource.TextChatNotAllowed, nil); err != nil {
				return fmt.Errorf("send chat not allowed msg: %w", err)
			}
			return nil
		}

		if err := m.handleCommand(ctx, upd.Message); err != nil {
			return fmt.Errorf("handle command: %w", err)
		}
	}

	if upd.CallbackQuery != nil {
		if err := m.handleCallbackQuery(ctx, upd.CallbackQuery); err != nil {
			return fmt.Errorf("handle callback query: %w", err)
		}
	}

	return nil
}

func (m *Manager) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	switch msg.Text {
	case CmdRules:
		return m.sendText(chatID, fmt.Sprintf(resource.TextRulesMsg, m.rounds()), nil)
	case CmdReset:
		return m.dispatch(ctx, chatID, intent{kind: intentReset})
	default:
		// greeting for /start and any free text
		var name string
		if msg.From != nil {
			name = msg.From.FirstName
		}
		markup := startKeyboard
		return m.sendText(chatID, fmt.Sprintf(resource.TextGreetingMsg, name), &markup)
	}
}

func (m *Manager) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}

	kind, shape, ok := parseCallbackData(query.Data)
	if !ok {
		if _, err := m.tg.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, resource.TextStaleBtnAnswer)); err != nil {
			return fmt.Errorf("send answer callback: %w", err)
		}
		return nil
	}

	return m.dispatch(ctx, query.Message.Chat.ID, intent{
		kind:      kind,
		shape:     shape,
		queryID:   query.ID,
		messageID: query.Message.MessageID,
	})
}

// dispatch routes an intent to the chat session, creating the session on demand
func (m *Manager) dispatch(ctx context.Context, chatID int64, in intent) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dispatch %s: %w", in.kind, err)
		}

		session := m.session(chatID)
		err := session.Dispatch(ctx, in)
		if errors.Is(err, ErrSessionClosed) {
			m.mtx.Lock()
			if v, ok := m.sessions.Get(chatID); ok && v.(*Session) == session {
				m.sessions.Delete(chatID)
			}
			m.mtx.Unlock()
			continue
		}

		if err != nil {
			return fmt.Errorf("dispatch %s: %w", in.kind, err)
		}

		return nil
	}
}

func (m *Manager) session(chatID int64) *Session {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if v, ok := m.sessions.Get(chatID); ok {
		return v.(*Session)
	}

	session := NewSession(SessionConfig{
		ChatID:       chatID,
		Tg:           m.tg,
		TickInterval: m.config.TickInterval,
		Rounds:       m.rounds(),
		Chooser:      m.newChooser(),
	})
	m.stopping.Add(1)
	session.Run(m.ctx)
	go func() {
		defer m.stopping.Done()
		<-session.Done()
	}()

	m.sessions.Add(chatID, session)
	logging.FromContext(m.ctx).Named("manager.session").Infof("session %s created for chat %d", session.ID, chatID)

	return session
}

// evict stops sessions pushed out of the cache or deleted from it
func (m *Manager) evict(_, value interface{}) {
	if session, ok := value.(*Session); ok {
		session.Stop()
	}
}

func (m *Manager) cleaning(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("manager.cleaning")
	ticker := time.NewTicker(cleaningInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.cleanInactive(time.Now()); n > 0 {
				logger.Infof("stopped %d inactive sessions", n)
			}
		}
	}
}

// cleanInactive stops sessions with no activity for PlayingTimeout
func (m *Manager) cleanInactive(now time.Time) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	var n int
	for _, key := range m.sessions.Keys() {
		v, ok := m.sessions.Get(key)
		if !ok {
			continue
		}

		if now.Sub(v.(*Session).LastActivity()) > m.config.PlayingTimeout {
			m.sessions.Delete(key)
			n++
		}
	}

	return n
}

func (m *Manager) shutdown() {
	m.mtx.Lock()
	for _, key := range m.sessions.Keys() {
		m.sessions.Delete(key)
	}
	m.mtx.Unlock()

	m.stopping.Wait()
}

func (m *Manager) rounds() int {
	if m.config.Rounds <= 0 {
		return rps.DefaultRounds
	}

	return m.config.Rounds
}

func (m *Manager) sendText(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = *markup
	}

	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	return nil
}
