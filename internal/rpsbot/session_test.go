package rpsbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bloops-games/rps/internal/resource"
	"github.com/bloops-games/rps/internal/rps"
)

// zeroChooser always draws Rock/Win, the answer is Paper
type zeroChooser struct{}

func (zeroChooser) Choose(int) int { return 0 }

func newTestSession(bot *fakeBot, rounds int) *Session {
	return NewSession(SessionConfig{ChatID: 42, Tg: bot, Rounds: rounds, Chooser: zeroChooser{}})
}

func mustHandle(t *testing.T, s *Session, in intent) {
	t.Helper()
	if err := s.handle(in); err != nil {
		t.Fatalf("handle %s: %v", in.kind, err)
	}
}

func TestSessionGameFlow(t *testing.T) {
	t.Parallel()

	bot := newFakeBot()
	s := newTestSession(bot, 2)

	mustHandle(t, s, intent{kind: intentStart, queryID: "q1"})
	if got := bot.lastCallback().Text; got != resource.TextStartBtnAnswer {
		t.Errorf("expected callback %q got %q", resource.TextStartBtnAnswer, got)
	}

	text, markup := chattableText(bot.lastSent())
	if !strings.Contains(text, "Rock") || !strings.Contains(text, "*WIN*") {
		t.Errorf("unexpected prompt %q", text)
	}

	if data := buttonData(markup); len(data) != 3 {
		t.Fatalf("expected 3 answer buttons got %v", data)
	}

	promptID := s.messageID
	if promptID == 0 {
		t.Fatal("prompt message id must be stored")
	}

	mustHandle(t, s, intent{kind: intentAnswer, shape: rps.Paper, queryID: "q2", messageID: promptID})
	if got := bot.lastCallback().Text; got != resource.TextCorrectTitle {
		t.Errorf("expected callback %q got %q", resource.TextCorrectTitle, got)
	}

	text, markup = chattableText(bot.lastSent())
	if !strings.Contains(text, "Correct! Your current score is 1") {
		t.Errorf("unexpected verdict %q", text)
	}

	if data := buttonData(markup); len(data) != 1 || data[0] != dataContinue {
		t.Errorf("expected continue button got %v", data)
	}

	// the tally changes before the round does
	if snap := s.engine.Snapshot(); snap.Tally != (rps.Tally{Correct: 1}) || !snap.Answered {
		t.Errorf("unexpected snapshot after answer %#v", snap)
	}

	mustHandle(t, s, intent{kind: intentContinue, queryID: "q3", messageID: promptID})
	text, _ = chattableText(bot.lastSent())
	if !strings.Contains(text, "Round 2 / 2") {
		t.Errorf("expected second round prompt got %q", text)
	}

	mustHandle(t, s, intent{kind: intentAnswer, shape: rps.Rock, queryID: "q4", messageID: promptID})
	text, _ = chattableText(bot.lastSent())
	if !strings.Contains(text, "Wrong! The correct answer is Paper") {
		t.Errorf("unexpected verdict %q", text)
	}

	mustHandle(t, s, intent{kind: intentContinue, queryID: "q5", messageID: promptID})
	text, markup = chattableText(bot.lastSent())
	if !strings.Contains(text, "Correctly answered 1 / 2. Time: 0.0 seconds") {
		t.Errorf("unexpected summary %q", text)
	}

	if data := buttonData(markup); len(data) != 1 || data[0] != dataRetry {
		t.Errorf("expected retry button got %v", data)
	}

	if phase := s.engine.Snapshot().Phase; phase != rps.PhaseFinished {
		t.Fatalf("expected %s got %s", rps.PhaseFinished, phase)
	}

	mustHandle(t, s, intent{kind: intentRetry, queryID: "q6", messageID: promptID})
	_, markup = chattableText(bot.lastSent())
	if data := buttonData(markup); len(data) != 1 || data[0] != dataStart {
		t.Errorf("expected start button got %v", data)
	}

	if snap := s.engine.Snapshot(); snap.Phase != rps.PhaseIdle || snap.Tally != (rps.Tally{}) {
		t.Errorf("expected clean idle state got %#v", snap)
	}
}

func TestSessionStaleButtons(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		setup []intent
		in    intent
	}{
		{
			name: "answer_idle",
			in:   intent{kind: intentAnswer, shape: rps.Paper, queryID: "q"},
		},
		{
			name: "continue_idle",
			in:   intent{kind: intentContinue, queryID: "q"},
		},
		{
			name: "retry_playing",
			setup: []intent{
				{kind: intentStart},
			},
			in: intent{kind: intentRetry, queryID: "q", messageID: 1},
		},
		{
			name: "answer_twice",
			setup: []intent{
				{kind: intentStart},
				{kind: intentAnswer, shape: rps.Paper, messageID: 1},
			},
			in: intent{kind: intentAnswer, shape: rps.Paper, queryID: "q", messageID: 1},
		},
		{
			name: "continue_unanswered",
			setup: []intent{
				{kind: intentStart},
			},
			in: intent{kind: intentContinue, queryID: "q", messageID: 1},
		},
		{
			name: "answer_old_message",
			setup: []intent{
				{kind: intentStart},
			},
			in: intent{kind: intentAnswer, shape: rps.Paper, queryID: "q", messageID: 100},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bot := newFakeBot()
			s := newTestSession(bot, 8)
			for _, in := range tc.setup {
				mustHandle(t, s, in)
			}

			before := s.engine.Snapshot()
			mustHandle(t, s, tc.in)

			if got := bot.lastCallback().Text; got != resource.TextStaleBtnAnswer {
				t.Errorf("expected stale notice got %q", got)
			}

			after := s.engine.Snapshot()
			if before.Phase != after.Phase || before.Tally != after.Tally || before.Answered != after.Answered {
				t.Errorf("stale button changed the state: before %#v after %#v", before, after)
			}
		})
	}
}

func TestSessionStartWhilePlaying(t *testing.T) {
	t.Parallel()

	bot := newFakeBot()
	s := newTestSession(bot, 8)
	mustHandle(t, s, intent{kind: intentStart})
	mustHandle(t, s, intent{kind: intentAnswer, shape: rps.Paper, messageID: s.messageID})
	mustHandle(t, s, intent{kind: intentStart})

	text, _ := chattableText(bot.lastSent())
	if text != resource.TextAlreadyPlayingMsg {
		t.Errorf("expected %q got %q", resource.TextAlreadyPlayingMsg, text)
	}

	if tally := s.engine.Snapshot().Tally; tally != (rps.Tally{Correct: 1}) {
		t.Errorf("start must not reset a running game, got %#v", tally)
	}
}

func TestSessionReset(t *testing.T) {
	t.Parallel()

	bot := newFakeBot()
	s := newTestSession(bot, 8)
	mustHandle(t, s, intent{kind: intentStart})
	mustHandle(t, s, intent{kind: intentAnswer, shape: rps.Rock, messageID: s.messageID})
	mustHandle(t, s, intent{kind: intentReset})

	if snap := s.engine.Snapshot(); snap.Phase != rps.PhaseIdle || snap.Tally != (rps.Tally{}) {
		t.Errorf("expected idle clean state got %#v", snap)
	}

	_, markup := chattableText(bot.lastSent())
	if data := buttonData(markup); len(data) != 1 || data[0] != dataStart {
		t.Errorf("expected start button got %v", data)
	}
}

func TestSessionShuffleKeepsShapes(t *testing.T) {
	t.Parallel()

	s := newTestSession(newFakeBot(), 8)
	for i := 0; i < 20; i++ {
		s.shuffle()
		seen := map[rps.Shape]bool{}
		for _, shape := range s.choices {
			seen[shape] = true
		}
		if len(seen) != 3 {
			t.Fatalf("shuffle lost a shape: %v", s.choices)
		}
	}
}

func TestSessionLoop(t *testing.T) {
	t.Parallel()

	bot := newFakeBot()
	s := NewSession(SessionConfig{ChatID: 1, Tg: bot, TickInterval: time.Millisecond, Chooser: zeroChooser{}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Run(ctx)
	if err := s.Dispatch(ctx, intent{kind: intentStart}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for bot.sentCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("prompt was not sent")
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session loop did not stop")
	}

	snap := s.engine.Snapshot()
	if snap.Phase != rps.PhasePlaying {
		t.Errorf("expected %s got %s", rps.PhasePlaying, snap.Phase)
	}

	if snap.Elapsed <= 0 {
		t.Errorf("expected the clock to run, got %v", snap.Elapsed)
	}

	if err := s.Dispatch(ctx, intent{kind: intentStart}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected %v got %v", ErrSessionClosed, err)
	}
}

func TestParseCallbackData(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		data  string
		kind  intentKind
		shape rps.Shape
		ok    bool
	}{
		{data: dataStart, kind: intentStart, ok: true},
		{data: dataContinue, kind: intentContinue, ok: true},
		{data: dataRetry, kind: intentRetry, ok: true},
		{data: "shape:Scissors", kind: intentAnswer, shape: rps.Scissors, ok: true},
		{data: "shape:Lizard"},
		{data: "unknown"},
	}

	for _, tc := range testCases {
		kind, shape, ok := parseCallbackData(tc.data)
		if kind != tc.kind || shape != tc.shape || ok != tc.ok {
			t.Errorf("%q: expected %s %s %v got %s %s %v", tc.data, tc.kind, tc.shape, tc.ok, kind, shape, ok)
		}
	}
}

func TestAnswerKeyboard(t *testing.T) {
	t.Parallel()

	markup := answerKeyboard([]rps.Shape{rps.Scissors, rps.Rock, rps.Paper})
	data := buttonData(&markup)
	expected := []string{"shape:Scissors", "shape:Rock", "shape:Paper"}
	if len(data) != len(expected) {
		t.Fatalf("expected %v got %v", expected, data)
	}

	for i := range expected {
		if data[i] != expected[i] {
			t.Errorf("expected %v got %v", expected, data)
		}
	}
}
