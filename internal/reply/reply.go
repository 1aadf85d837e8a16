// Package reply produces the author persona's side of a conversation.
// The Responder interface is the seam where a real model provider would
// plug in; the shipped implementation picks canned text after a delay.
package reply

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Responder generates an author reply to a user question.
type Responder interface {
	Reply(ctx context.Context, authorName, question string) (string, error)
}

// {question} is substituted with the user's question text.
var cannedResponses = []string{
	"感谢您对《{question}》的提问！这确实是一个值得深思的问题。根据我在书中的观点...",
	"您提出了一个非常有见地的观点。在我的研究中，我发现...",
	"这个问题让我想起了书中第三章的内容。我认为...",
	"从我的角度来看，这个问题的核心在于...",
	"您的思考很有深度。让我从另一个角度来解释...",
}

// Canned replies with one of a fixed set of responses after an
// artificial delay, standing in for a model call.
type Canned struct {
	// Delay is the simulated generation latency.
	Delay time.Duration
	// Pick overrides the random selection; used by tests. It receives
	// the number of responses and returns an index.
	Pick func(n int) int
}

// NewCanned builds the default canned responder.
func NewCanned(delay time.Duration) *Canned {
	return &Canned{Delay: delay}
}

// Reply waits the configured delay and returns one canned response.
// A canceled context wins over the timer and no text is produced.
func (c *Canned) Reply(ctx context.Context, authorName, question string) (string, error) {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	pick := c.Pick
	if pick == nil {
		pick = rand.Intn
	}
	text := cannedResponses[pick(len(cannedResponses))]
	return strings.ReplaceAll(text, "{question}", question), nil
}
