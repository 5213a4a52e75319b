package resource

import (
	"github.com/bloops-games/rps/internal/rps"
	"github.com/enescakir/emoji"
)

// button labels
var (
	TextStartBtn    = emoji.Rocket.String() + " Start"
	TextContinueBtn = "Continue"
	TextRetryBtn    = "Retry"
)

// callback answers and short notices
var (
	TextStartBtnAnswer    = "Start!"
	TextStaleBtnAnswer    = "This button is no longer active"
	TextAlreadyPlayingMsg = "The game is already running, tap the correct answer"
	TextChatNotAllowed    = emoji.WomanGesturingNo.String() + " The bot does not work in group chats"
)

// verdict and summary copy
const (
	TextCorrectTitle   = "CORRECT"
	TextWrongTitle     = "WRONG"
	TextFinishedTitle  = "Finished!"
	TextCorrectMsg     = "Correct! Your current score is %d"
	TextWrongMsg       = "Wrong! The correct answer is %s"
	TextSummaryMsg     = "Correctly answered %d / %d. Time: %s"
	TextSecondsFmt     = "%.1f seconds"
	TextTapAnswerMsg   = "Tap the correct answer"
	TextPlayingLabel   = "Playing.."
	TextScoreCorrect   = "CORRECT"
	TextScoreWrong     = "WRONG"
	TextRoundHeaderMsg = "Round %d / %d"
)

var (
	TextGreetingMsg = emoji.Robot.String() + " Hi, %s\n\n" +
		"This is a rock paper scissors trainer. I show a hand and whether you need to " +
		"*WIN* or *LOSE* against it, you tap the answer that does it.\n\n" +
		"Press " + TextStartBtn + " when you are ready"

	TextRulesMsg = emoji.Bookmark.String() + " *Rules*\n\n" +
		emoji.Joystick.String() + " Each round shows a shape and a goal, *WIN* or *LOSE*\n" +
		emoji.ThumbsUp.String() + " Pick the shape that reaches the goal\n" +
		emoji.Stopwatch.String() + " The clock runs until the last answer\n" +
		emoji.ChequeredFlag.String() + " The game ends after %d answers\n\n" +
		"*Commands:*\n" +
		"/start - show the start button\n" +
		"/rules - show these rules\n" +
		"/reset - abandon the current game"
)

// ShapeEmoji returns the hand sign of a shape
func ShapeEmoji(s rps.Shape) string {
	switch s {
	case rps.Rock:
		return emoji.RaisedFist.String()
	case rps.Paper:
		return emoji.RaisedHand.String()
	case rps.Scissors:
		return emoji.VictoryHand.String()
	default:
		return emoji.CrossMark.String()
	}
}

// ShapeLabel is the shape name decorated with its hand sign
func ShapeLabel(s rps.Shape) string {
	return ShapeEmoji(s) + " " + s.String()
}
