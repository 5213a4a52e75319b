package rps

import "fmt"

type Shape uint8

const (
	Rock Shape = iota + 1
	Paper
	Scissors
)

// Shapes returns a fresh copy of all shapes in their canonical order
func Shapes() []Shape {
	return []Shape{Rock, Paper, Scissors}
}

func (s Shape) String() string {
	switch s {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// ParseShape accepts a full shape name or its first letter, in any case
func ParseShape(s string) (Shape, error) {
	switch s {
	case "Rock", "rock", "ROCK", "r", "R":
		return Rock, nil
	case "Paper", "paper", "PAPER", "p", "P":
		return Paper, nil
	case "Scissors", "scissors", "SCISSORS", "s", "S":
		return Scissors, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

type Outcome uint8

const (
	Win Outcome = iota + 1
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

var (
	// beats[s] is the shape that s defeats
	beats = map[Shape]Shape{
		Rock:     Scissors,
		Paper:    Rock,
		Scissors: Paper,
	}
	// beatenBy[s] is the shape that defeats s
	beatenBy = map[Shape]Shape{
		Rock:     Paper,
		Paper:    Scissors,
		Scissors: Rock,
	}
)

// CorrectAnswer returns the shape the player must pick to get outcome against shape
func CorrectAnswer(shape Shape, outcome Outcome) Shape {
	if outcome == Lose {
		return beats[shape]
	}

	return beatenBy[shape]
}
