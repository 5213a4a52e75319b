package resource

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bloops-games/rps/internal/rps"
	"github.com/bloops-games/rps/internal/strpool"
	"github.com/enescakir/emoji"
)

func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf(TextSecondsFmt, d.Seconds())
}

func CorrectText(correct int) string {
	return fmt.Sprintf(TextCorrectMsg, correct)
}

func WrongText(answer rps.Shape) string {
	return fmt.Sprintf(TextWrongMsg, answer)
}

func SummaryText(s rps.Snapshot) string {
	return fmt.Sprintf(TextSummaryMsg, s.Tally.Correct, s.Tally.Total(), FormatSeconds(s.Elapsed))
}

// VerdictTitle is the alert title of the last answer, empty when there is none
func VerdictTitle(s rps.Snapshot) string {
	if s.LastVerdict == nil {
		return ""
	}

	if s.LastVerdict.Correct {
		return TextCorrectTitle
	}

	return TextWrongTitle
}

// VerdictText is the alert message of the last answer, empty when there is none
func VerdictText(s rps.Snapshot) string {
	if s.LastVerdict == nil {
		return ""
	}

	if s.LastVerdict.Correct {
		return CorrectText(s.Tally.Correct)
	}

	return WrongText(s.LastVerdict.Answer)
}

func RenderPrompt(s rps.Snapshot) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString(fmt.Sprintf(TextRoundHeaderMsg, s.Tally.Total()+1, s.Rounds))
	buf.WriteString("\n\n")
	buf.WriteString(ShapeLabel(s.Round.Shape))
	buf.WriteString("\n")
	buf.WriteString("*")
	buf.WriteString(s.Round.Outcome.String())
	buf.WriteString("*")
	buf.WriteString("\n\n")
	buf.WriteString(TextTapAnswerMsg)
	buf.WriteString("\n\n")
	buf.WriteString(RenderScore(s))

	return buf.String()
}

func RenderScore(s rps.Snapshot) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString(emoji.ThumbsUp.String())
	buf.WriteString(" ")
	buf.WriteString(TextScoreCorrect)
	buf.WriteString(" ")
	buf.WriteString(strconv.Itoa(s.Tally.Correct))
	buf.WriteString("  ")
	buf.WriteString(emoji.ThumbsDown.String())
	buf.WriteString(" ")
	buf.WriteString(TextScoreWrong)
	buf.WriteString(" ")
	buf.WriteString(strconv.Itoa(s.Tally.Wrong))
	buf.WriteString("  ")
	buf.WriteString(emoji.Stopwatch.String())
	buf.WriteString(" ")
	buf.WriteString(FormatSeconds(s.Elapsed))

	return buf.String()
}

func RenderVerdict(s rps.Snapshot) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString("*")
	buf.WriteString(VerdictTitle(s))
	buf.WriteString("*")
	buf.WriteString("\n\n")
	buf.WriteString(VerdictText(s))

	return buf.String()
}

func RenderSummary(s rps.Snapshot) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString(emoji.Trophy.String())
	buf.WriteString(" *")
	buf.WriteString(TextFinishedTitle)
	buf.WriteString("*")
	buf.WriteString("\n\n")
	buf.WriteString(SummaryText(s))

	return buf.String()
}
