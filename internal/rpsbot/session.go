package rpsbot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bloops-games/rps/internal/logging"
	"github.com/bloops-games/rps/internal/resource"
	"github.com/bloops-games/rps/internal/rps"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/google/uuid"
)

var ErrSessionClosed = errors.New("session closed")

type intentKind uint8

const (
	intentStart intentKind = iota + 1
	intentAnswer
	intentContinue
	intentRetry
	intentReset
)

func (k intentKind) String() string {
	switch k {
	case intentStart:
		return "start"
	case intentAnswer:
		return "answer"
	case intentContinue:
		return "continue"
	case intentRetry:
		return "retry"
	case intentReset:
		return "reset"
	default:
		return fmt.Sprintf("intent(%d)", uint8(k))
	}
}

// intent is a user action, queryID and messageID are set for button presses
type intent struct {
	kind      intentKind
	shape     rps.Shape
	queryID   string
	messageID int
}

type SessionConfig struct {
	ChatID       int64
	Tg           Sender
	TickInterval time.Duration
	Rounds       int
	// Source of randomness for the rounds, rps.FastRand if nil
	Chooser rps.Chooser
}

func NewSession(config SessionConfig) *Session {
	if config.TickInterval <= 0 {
		config.TickInterval = rps.DefaultTickInterval
	}

	now := time.Now()
	return &Session{
		ID:           uuid.New(),
		ChatID:       config.ChatID,
		CreatedAt:    now,
		lastActivity: now,
		tg:           config.Tg,
		tick:         config.TickInterval,
		engine:       rps.NewEngine(rps.Config{Rounds: config.Rounds, Chooser: config.Chooser}),
		shuffler:     rps.FastRand{},
		choices:      rps.Shapes(),
		intentCh:     make(chan intent, 1),
		done:         make(chan struct{}),
	}
}

// Session drives the game of one chat, the engine is touched only by the loop goroutine
type Session struct {
	ID        uuid.UUID
	ChatID    int64
	CreatedAt time.Time

	mtx          sync.RWMutex
	lastActivity time.Time

	tg     Sender
	tick   time.Duration
	engine *rps.Engine

	shuffler rps.Chooser
	// answer buttons order, reshuffled for every round
	choices []rps.Shape
	// message with the current prompt, verdict or summary
	messageID int

	intentCh chan intent
	done     chan struct{}
	sema     sync.Once
	cancel   func()
}

func (s *Session) Run(ctx context.Context) {
	s.sema.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		logger := logging.FromContext(ctx).Named("session").With("session", s.ID.String(), "chat", s.ChatID)
		ctx = logging.WithLogger(ctx, logger)

		s.mtx.Lock()
		s.cancel = cancel
		s.mtx.Unlock()

		go s.loop(ctx)
		logger.Debugf("the game session started")
	})
}

func (s *Session) Stop() {
	s.mtx.RLock()
	cancel := s.cancel
	s.mtx.RUnlock()

	if cancel != nil {
		cancel()
	}
}

// Done is closed when the loop exits
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) LastActivity() time.Time {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.lastActivity
}

// Dispatch hands an intent over to the session loop
func (s *Session) Dispatch(ctx context.Context, in intent) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.intentCh <- in:
		s.mtx.Lock()
		s.lastActivity = time.Now()
		s.mtx.Unlock()
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)
	logger := logging.FromContext(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debugf("the game session stopped")
			return
		case <-ticker.C:
			s.engine.Tick(s.tick)
		case in := <-s.intentCh:
			if err := s.handle(in); err != nil {
				logger.Errorf("handle %s: %v", in.kind, err)
			}
		}
	}
}

func (s *Session) handle(in intent) error {
	snap := s.engine.Snapshot()
	switch in.kind {
	case intentStart:
		return s.handleStart(in, snap)
	case intentAnswer:
		return s.handleAnswer(in, snap)
	case intentContinue:
		return s.handleContinue(in, snap)
	case intentRetry:
		return s.handleRetry(in, snap)
	case intentReset:
		return s.handleReset()
	}

	return fmt.Errorf("unknown intent %s", in.kind)
}

func (s *Session) handleStart(in intent, snap rps.Snapshot) error {
	switch snap.Phase {
	case rps.PhasePlaying:
		if err := s.answerCallback(in, ""); err != nil {
			return err
		}
		return s.send(resource.TextAlreadyPlayingMsg, nil)
	case rps.PhaseFinished:
		s.engine.Reset()
	}

	s.engine.Start()
	if err := s.answerCallback(in, resource.TextStartBtnAnswer); err != nil {
		return err
	}

	s.shuffle()
	markup := answerKeyboard(s.choices)
	return s.send(resource.RenderPrompt(s.engine.Snapshot()), &markup)
}

func (s *Session) handleAnswer(in intent, snap rps.Snapshot) error {
	if snap.Phase != rps.PhasePlaying || snap.Answered || in.messageID != s.messageID {
		return s.answerCallback(in, resource.TextStaleBtnAnswer)
	}

	s.engine.SubmitAnswer(in.shape)
	snap = s.engine.Snapshot()
	if err := s.answerCallback(in, resource.VerdictTitle(snap)); err != nil {
		return err
	}

	return s.edit(resource.RenderVerdict(snap), continueKeyboard)
}

func (s *Session) handleContinue(in intent, snap rps.Snapshot) error {
	if snap.Phase != rps.PhasePlaying || !snap.Answered || in.messageID != s.messageID {
		return s.answerCallback(in, resource.TextStaleBtnAnswer)
	}

	s.engine.Advance()
	snap = s.engine.Snapshot()
	if err := s.answerCallback(in, ""); err != nil {
		return err
	}

	if snap.Phase == rps.PhaseFinished {
		return s.edit(resource.RenderSummary(snap), retryKeyboard)
	}

	s.shuffle()
	return s.edit(resource.RenderPrompt(snap), answerKeyboard(s.choices))
}

func (s *Session) handleRetry(in intent, snap rps.Snapshot) error {
	if snap.Phase != rps.PhaseFinished || in.messageID != s.messageID {
		return s.answerCallback(in, resource.TextStaleBtnAnswer)
	}

	s.engine.Reset()
	if err := s.answerCallback(in, ""); err != nil {
		return err
	}

	return s.edit(resource.RenderScore(s.engine.Snapshot()), startKeyboard)
}

func (s *Session) handleReset() error {
	s.engine.Reset()
	markup := startKeyboard
	return s.send(resource.RenderScore(s.engine.Snapshot()), &markup)
}

// shuffle reorders the answer buttons
func (s *Session) shuffle() {
	for i := len(s.choices) - 1; i > 0; i-- {
		j := s.shuffler.Choose(i + 1)
		s.choices[i], s.choices[j] = s.choices[j], s.choices[i]
	}
}

func (s *Session) answerCallback(in intent, text string) error {
	if in.queryID == "" {
		return nil
	}

	if _, err := s.tg.AnswerCallbackQuery(tgbotapi.NewCallback(in.queryID, text)); err != nil {
		return fmt.Errorf("send answer callback: %w", err)
	}

	return nil
}

// send posts a new message, a message with buttons becomes the current one
func (s *Session) send(text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(s.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = *markup
	}

	output, err := s.tg.Send(msg)
	if err != nil {
		return fmt.Errorf("send msg: %w", err)
	}

	if markup != nil {
		s.messageID = output.MessageID
	}

	return nil
}

func (s *Session) edit(text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewEditMessageText(s.ChatID, s.messageID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = &markup
	if _, err := s.tg.Send(msg); err != nil {
		return fmt.Errorf("edit msg: %w", err)
	}

	return nil
}
