package rps

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultRounds       = 8
	DefaultTickInterval = 100 * time.Millisecond
)

var (
	// ErrPhase is wrapped by the panic value of an operation called in the wrong phase
	ErrPhase        = errors.New("operation not allowed in current phase")
	ErrUnknownShape = errors.New("unknown shape")
)

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

type Round struct {
	Shape   Shape
	Outcome Outcome
}

func (r Round) Answer() Shape {
	return CorrectAnswer(r.Shape, r.Outcome)
}

type Tally struct {
	Correct int
	Wrong   int
}

func (t Tally) Total() int {
	return t.Correct + t.Wrong
}

type Verdict struct {
	Correct bool
	Answer  Shape
}

// Snapshot is a read-only copy of the engine state
type Snapshot struct {
	Phase       Phase
	Round       Round
	Tally       Tally
	Elapsed     time.Duration
	Rounds      int
	Answered    bool
	LastVerdict *Verdict
}

type Config struct {
	// Number of answers that ends the game, DefaultRounds if zero
	Rounds int
	// Source of randomness for rounds, FastRand if nil
	Chooser Chooser
}

func NewEngine(config Config) *Engine {
	if config.Rounds <= 0 {
		config.Rounds = DefaultRounds
	}

	if config.Chooser == nil {
		config.Chooser = FastRand{}
	}

	return &Engine{
		rounds:    config.Rounds,
		rnd:       config.Chooser,
		shapes:    Shapes(),
		outcomes:  []Outcome{Win, Lose},
		observers: map[int]func(Snapshot){},
	}
}

// Engine is not safe for concurrent use, the owner must serialise all calls
type Engine struct {
	rounds int
	rnd    Chooser

	shapes   []Shape
	outcomes []Outcome

	phase    Phase
	round    Round
	tally    Tally
	elapsed  time.Duration
	answered bool
	verdict  *Verdict

	observers  map[int]func(Snapshot)
	observerID int
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:    e.phase,
		Round:    e.round,
		Tally:    e.tally,
		Elapsed:  e.elapsed,
		Rounds:   e.rounds,
		Answered: e.answered,
	}

	if e.verdict != nil {
		v := *e.verdict
		s.LastVerdict = &v
	}

	return s
}

// Subscribe registers fn to receive a snapshot after every state change
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.observerID++
	id := e.observerID
	e.observers[id] = fn

	return func() {
		delete(e.observers, id)
	}
}

func (e *Engine) Start() {
	e.require("start", PhaseIdle)

	e.round = e.draw()
	e.phase = PhasePlaying
	e.elapsed = 0
	e.tally = Tally{}
	e.answered = false
	e.verdict = nil
	e.publish()
}

func (e *Engine) SubmitAnswer(choice Shape) Verdict {
	e.require("submit answer", PhasePlaying)
	if e.answered {
		panic(fmt.Errorf("%w: submit answer: round already answered", ErrPhase))
	}

	answer := e.round.Answer()
	v := Verdict{Correct: choice == answer, Answer: answer}
	if v.Correct {
		e.tally.Correct++
	} else {
		e.tally.Wrong++
	}

	e.answered = true
	e.verdict = &v
	e.publish()

	return v
}

func (e *Engine) Advance() {
	e.require("advance", PhasePlaying)
	if !e.answered {
		panic(fmt.Errorf("%w: advance: round not answered", ErrPhase))
	}

	e.answered = false
	if e.tally.Total() >= e.rounds {
		e.phase = PhaseFinished
	} else {
		e.round = e.draw()
	}

	e.publish()
}

// Reset is allowed from any phase
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.tally = Tally{}
	e.elapsed = 0
	e.answered = false
	e.verdict = nil
	e.round = e.draw()
	e.publish()
}

// Tick applies one timer firing of the given interval
func (e *Engine) Tick(interval time.Duration) {
	switch e.phase {
	case PhasePlaying:
		e.elapsed += interval
	case PhaseIdle:
		if e.elapsed == 0 {
			return
		}
		e.elapsed = 0
	case PhaseFinished:
		return
	}

	e.publish()
}

func (e *Engine) draw() Round {
	return Round{
		Shape:   e.shapes[e.rnd.Choose(len(e.shapes))],
		Outcome: e.outcomes[e.rnd.Choose(len(e.outcomes))],
	}
}

func (e *Engine) require(op string, phase Phase) {
	if e.phase != phase {
		panic(fmt.Errorf("%w: %s: want %s, got %s", ErrPhase, op, phase, e.phase))
	}
}

func (e *Engine) publish() {
	if len(e.observers) == 0 {
		return
	}

	s := e.Snapshot()
	for _, fn := range e.observers {
		fn(s)
	}
}
