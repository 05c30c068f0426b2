package timeframe

import (
	"strings"
)

// Response messages surfaced to the user by the turn controller.
const (
	msgNoExtraction = "I couldn't extract a valid time from that."
	askExactTime    = "Could you confirm the exact time (e.g., 2pm or 2am)?"
	askExactDay     = "Which exact day did you mean?"
)

// Controller runs one conversational turn: extract, merge, and build the
// user-facing reply. It holds no per-user state; the caller supplies the
// prior record and persists the updated one.
type Controller struct {
	parser *Parser
}

// NewController creates a turn controller around the given parser.
func NewController(parser *Parser) *Controller {
	return &Controller{parser: parser}
}

// ResolveTurn processes one message against the prior record. A nil prior
// is treated as a fresh negotiation. When the message carries no temporal
// expression the prior record is returned untouched alongside a fixed
// re-prompt and ErrNoTemporalExpression, so callers can avoid persisting
// anything for that turn. The returned record's Complete flag signals
// finalization; the caller is responsible for persisting a reminder from
// it and discarding the record.
func (c *Controller) ResolveTurn(userID, message string, prior *Record) (string, *Record, error) {
	if prior == nil {
		prior = NewRecord(userID)
	}

	ext, err := c.parser.Extract(message)
	if err != nil {
		return msgNoExtraction, prior, err
	}

	merged := Merge(prior, ext, message)
	return c.buildResponse(merged), merged, nil
}

func (c *Controller) buildResponse(r *Record) string {
	summary := r.Summary()
	if r.Complete {
		return "Reminder set for " + summary + ".\nI've locked this in as your final reminder time."
	}

	var asks []string
	if r.TimeAmbiguous {
		ask := askExactTime
		if len(r.AmbiguousOptions) == 2 {
			ask = "Could you confirm the exact time (did you mean " +
				r.AmbiguousOptions[0] + " or " + r.AmbiguousOptions[1] + ")?"
		}
		asks = append(asks, ask)
	} else if r.TimeAssumed {
		asks = append(asks, askExactTime)
	}
	if r.DayAssumed {
		asks = append(asks, askExactDay)
	}

	response := "Got it! " + summary
	if len(asks) > 0 {
		response += "\nBut I need clarification on:\n- " + strings.Join(asks, "\n- ")
	}
	return response
}
