// Package console plays the game in a terminal, one engine per process.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bloops-games/rps/internal/logging"
	"github.com/bloops-games/rps/internal/resource"
	"github.com/bloops-games/rps/internal/rps"
)

const helpText = "commands: start, r|p|s (or rock|paper|scissors), enter to continue, retry, quit"

func New(engine *rps.Engine, out io.Writer, tick time.Duration) *Console {
	if tick <= 0 {
		tick = rps.DefaultTickInterval
	}

	return &Console{engine: engine, out: out, tick: tick}
}

type Console struct {
	engine *rps.Engine
	out    io.Writer
	tick   time.Duration

	// last rendered state, ticks alone do not redraw
	last rps.Snapshot
	err  error
}

// Run reads commands from in until quit, EOF or ctx is done
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	logger := logging.FromContext(ctx).Named("console.Run")
	unsubscribe := c.engine.Subscribe(c.render)
	defer unsubscribe()

	c.last = c.engine.Snapshot()
	c.printf("%s\n%s\n", resource.RenderScore(c.last), helpText)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Errorf("read input: %v", err)
		}
	}()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return c.err
		case <-ticker.C:
			c.engine.Tick(c.tick)
		case line, ok := <-lines:
			if !ok {
				return c.err
			}

			if quit := c.execute(line); quit {
				return c.err
			}
		}

		if c.err != nil {
			return c.err
		}
	}
}

func (c *Console) execute(line string) (quit bool) {
	snap := c.engine.Snapshot()
	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return true
	case "help", "h", "?":
		c.printf("%s\n", helpText)
	case "start":
		switch snap.Phase {
		case rps.PhasePlaying:
			c.printf("%s\n", resource.TextAlreadyPlayingMsg)
			return false
		case rps.PhaseFinished:
			c.engine.Reset()
		}
		c.engine.Start()
	case "retry":
		if snap.Phase != rps.PhaseFinished {
			c.printf("nothing to retry\n")
			return false
		}
		c.engine.Reset()
	case "", "next", "continue":
		if snap.Phase != rps.PhasePlaying || !snap.Answered {
			return false
		}
		c.engine.Advance()
	default:
		shape, err := rps.ParseShape(line)
		if err != nil {
			c.printf("%v, %s\n", err, helpText)
			return false
		}

		if snap.Phase != rps.PhasePlaying || snap.Answered {
			c.printf("no question to answer\n")
			return false
		}
		c.engine.SubmitAnswer(shape)
	}

	return false
}

// render prints what changed since the last rendered snapshot
func (c *Console) render(s rps.Snapshot) {
	prev := c.last
	c.last = s

	switch {
	case s.Phase == rps.PhaseIdle && prev.Phase != rps.PhaseIdle:
		c.printf("%s\ntype start to play\n", resource.RenderScore(s))
	case s.Phase == rps.PhaseFinished && prev.Phase != rps.PhaseFinished:
		c.printf("%s\n%s\ntype retry to play again\n", resource.TextFinishedTitle, resource.SummaryText(s))
	case s.Phase == rps.PhasePlaying && s.Answered && !prev.Answered:
		c.printf("%s\n%s\npress enter to continue\n", resource.VerdictTitle(s), resource.VerdictText(s))
	case s.Phase == rps.PhasePlaying && !s.Answered && (prev.Phase != rps.PhasePlaying || prev.Answered):
		c.printf(
			"\n"+resource.TextRoundHeaderMsg+"\n%s  %s\n%s\n",
			s.Tally.Total()+1, s.Rounds,
			resource.ShapeLabel(s.Round.Shape), s.Round.Outcome,
			resource.TextTapAnswerMsg,
		)
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	if c.err != nil {
		return
	}

	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.err = fmt.Errorf("write output: %w", err)
	}
}
