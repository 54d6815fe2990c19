package conversation

import (
	"fmt"
	"strings"
	"time"

	"influencer-chatbot-be/pkg/lang"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DefaultCap is the maximum number of turns kept per session
	// (10 exchanges).
	DefaultCap = 20

	// RecentWindowSize bounds prompt size for the context judge and the
	// reformulator (last 3 exchanges).
	RecentWindowSize = 6
)

// Turn is one message in a conversation. Immutable once appended.
type Turn struct {
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Language  lang.Language `json:"language"`
	Timestamp time.Time     `json:"timestamp"`
}

// Log is the ordered, bounded history of a single session. Append is the
// only mutator; when the cap is exceeded the oldest turns are evicted
// first-in-first-out.
type Log struct {
	Turns []Turn `json:"turns"`
	Cap   int    `json:"cap"`
}

func NewLog() *Log {
	return &Log{Cap: DefaultCap}
}

func (l *Log) Append(t Turn) {
	capacity := l.Cap
	if capacity <= 0 {
		capacity = DefaultCap
		l.Cap = capacity
	}
	l.Turns = append(l.Turns, t)
	if len(l.Turns) > capacity {
		l.Turns = l.Turns[len(l.Turns)-capacity:]
	}
}

// RecentWindow returns a copy of the last n turns. The copy never aliases
// the internal slice, so callers cannot mutate the log through it.
func (l *Log) RecentWindow(n int) []Turn {
	if n <= 0 || len(l.Turns) == 0 {
		return []Turn{}
	}
	start := len(l.Turns) - n
	if start < 0 {
		start = 0
	}
	window := make([]Turn, len(l.Turns)-start)
	copy(window, l.Turns[start:])
	return window
}

func (l *Log) Clear() {
	l.Turns = nil
}

func (l *Log) Len() int {
	return len(l.Turns)
}

// Transcript renders turns as "Human:"/"Assistant:" lines, the format the
// structured and document backends expect in conversation_context.
func Transcript(turns []Turn) string {
	var b strings.Builder
	for _, t := range turns {
		speaker := "Human"
		if t.Role == RoleAssistant {
			speaker = "Assistant"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", speaker, t.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}
