package conversation

import (
	"fmt"
	"testing"
	"time"

	"influencer-chatbot-be/pkg/lang"
)

func userTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content, Language: lang.English, Timestamp: time.Now()}
}

func assistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content, Language: lang.English, Timestamp: time.Now()}
}

func TestAppendNeverExceedsCap(t *testing.T) {
	l := NewLog()

	total := DefaultCap + 15
	for i := 0; i < total; i++ {
		l.Append(userTurn(fmt.Sprintf("message %d", i)))
	}

	if l.Len() != DefaultCap {
		t.Fatalf("Len = %d, want %d", l.Len(), DefaultCap)
	}

	// Oldest turns evicted first: the log holds exactly the last cap turns
	// in original order.
	first := l.Turns[0].Content
	wantFirst := fmt.Sprintf("message %d", total-DefaultCap)
	if first != wantFirst {
		t.Errorf("first turn = %q, want %q", first, wantFirst)
	}
	last := l.Turns[l.Len()-1].Content
	wantLast := fmt.Sprintf("message %d", total-1)
	if last != wantLast {
		t.Errorf("last turn = %q, want %q", last, wantLast)
	}
}

func TestRecentWindow(t *testing.T) {
	l := NewLog()
	for i := 0; i < 10; i++ {
		l.Append(userTurn(fmt.Sprintf("message %d", i)))
	}

	window := l.RecentWindow(6)
	if len(window) != 6 {
		t.Fatalf("window length = %d, want 6", len(window))
	}
	if window[0].Content != "message 4" {
		t.Errorf("window start = %q, want %q", window[0].Content, "message 4")
	}

	// Mutating the window must not touch the log
	window[0].Content = "mutated"
	if l.Turns[4].Content != "message 4" {
		t.Error("RecentWindow aliases the internal slice")
	}
}

func TestRecentWindowShorterThanN(t *testing.T) {
	l := NewLog()
	l.Append(userTurn("only one"))

	window := l.RecentWindow(6)
	if len(window) != 1 {
		t.Fatalf("window length = %d, want 1", len(window))
	}
}

func TestClear(t *testing.T) {
	l := NewLog()
	l.Append(userTurn("hello"))
	l.Append(assistantTurn("hi there"))

	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", l.Len())
	}

	// Log stays usable after clearing
	l.Append(userTurn("again"))
	if l.Len() != 1 {
		t.Fatalf("Len after re-append = %d, want 1", l.Len())
	}
}

func TestTranscript(t *testing.T) {
	turns := []Turn{
		userTurn("What is John's engagement rate?"),
		assistantTurn("It is 4.2%."),
	}

	got := Transcript(turns)
	want := "Human: What is John's engagement rate?\nAssistant: It is 4.2%."
	if got != want {
		t.Errorf("Transcript = %q, want %q", got, want)
	}
}

func TestTranscriptEmpty(t *testing.T) {
	if got := Transcript(nil); got != "" {
		t.Errorf("Transcript(nil) = %q, want empty", got)
	}
}
