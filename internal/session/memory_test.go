package session

import (
	"fmt"
	"testing"

	"github.com/fixdesk/fixdesk/internal/extract"
)

func TestWindowEviction(t *testing.T) {
	m := NewMemory()
	for i := 0; i < 8; i++ {
		m.Update(fmt.Sprintf("message %d", i), "reply", extract.Fields{})
	}

	window := m.Window()
	if len(window) != windowSize {
		t.Fatalf("window length = %d, want %d", len(window), windowSize)
	}
	if window[0].User != "message 3" {
		t.Errorf("oldest turn = %q, want message 3", window[0].User)
	}
	if window[len(window)-1].User != "message 7" {
		t.Errorf("newest turn = %q, want message 7", window[len(window)-1].User)
	}
}

func TestProfileFirstWriteWins(t *testing.T) {
	m := NewMemory()
	m.Update("my name is John Smith", "ok", extract.Fields{Name: "John Smith", Mobile: "9876543210"})
	m.Update("my name is Jane Doe", "ok", extract.Fields{Name: "Jane Doe", Mobile: "1112223333"})

	p := m.Profile()
	if p.Name != "John Smith" {
		t.Errorf("Name = %q, want John Smith", p.Name)
	}
	if p.Mobile != "9876543210" {
		t.Errorf("Mobile = %q, want 9876543210", p.Mobile)
	}
}

func TestDominantSentimentStable(t *testing.T) {
	m := NewMemory()
	m.Update("this is urgent", "ok", extract.Fields{})
	m.Update("thank you, great", "ok", extract.Fields{})

	// Tie between urgent and positive: earliest label reaching the max wins.
	first := m.Insights().DominantSentiment
	if first != SentimentUrgent {
		t.Errorf("DominantSentiment = %q, want urgent", first)
	}
	for i := 0; i < 10; i++ {
		if got := m.Insights().DominantSentiment; got != first {
			t.Fatalf("unstable dominant sentiment: %q then %q", first, got)
		}
	}
}

func TestDominantSentimentEmptyHistory(t *testing.T) {
	m := NewMemory()
	if got := m.Insights().DominantSentiment; got != SentimentNeutral {
		t.Errorf("DominantSentiment = %q, want neutral", got)
	}
}

func TestSentimentPrecedence(t *testing.T) {
	// Urgent beats negative even when both are present.
	if got := AnalyzeSentiment("I am frustrated, this is urgent"); got != SentimentUrgent {
		t.Errorf("sentiment = %q, want urgent", got)
	}
	if got := AnalyzeSentiment("I am frustrated"); got != SentimentNegative {
		t.Errorf("sentiment = %q, want negative", got)
	}
	if got := AnalyzeSentiment("thank you"); got != SentimentPositive {
		t.Errorf("sentiment = %q, want positive", got)
	}
	if got := AnalyzeSentiment("the sky is blue"); got != SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral", got)
	}
}

func TestTechnicalFocus(t *testing.T) {
	m := NewMemory()
	m.Update("my laptop wifi is broken", "ok", extract.Fields{})

	focus := m.Insights().TechnicalFocus
	want := []string{"hardware", "network"}
	if len(focus) != len(want) {
		t.Fatalf("TechnicalFocus = %v, want %v", focus, want)
	}
	for i := range want {
		if focus[i] != want[i] {
			t.Errorf("TechnicalFocus[%d] = %q, want %q", i, focus[i], want[i])
		}
	}
}

func TestRecentIntents(t *testing.T) {
	m := NewMemory()
	m.Update("I want to register a complaint", "ok", extract.Fields{})
	m.Update("check the status please", "ok", extract.Fields{})
	m.Update("when will it be fixed", "ok", extract.Fields{})
	m.Update("thanks, great work", "ok", extract.Fields{})

	ins := m.Insights()
	if len(ins.RecentIntents) != 3 {
		t.Fatalf("RecentIntents = %v, want 3 entries", ins.RecentIntents)
	}
	if ins.CurrentIntent != ins.RecentIntents[2] {
		t.Errorf("CurrentIntent %q != last recent intent %q", ins.CurrentIntent, ins.RecentIntents[2])
	}
}

func TestContextReset(t *testing.T) {
	c := Context{Name: "John", Mobile: "9876543210", Details: "laptop broken badly", Step: StepProcessing}
	c.Reset()

	if c.Step != StepInitial {
		t.Errorf("Step = %v, want initial", c.Step)
	}
	if c.Name != "" || c.Mobile != "" || c.Details != "" {
		t.Errorf("slots not cleared: %+v", c)
	}
}

func TestMissingSlotsOrder(t *testing.T) {
	c := Context{Mobile: "9876543210"}
	missing := c.MissingSlots()
	want := []string{"name", "complaint details"}
	if len(missing) != len(want) {
		t.Fatalf("MissingSlots = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("MissingSlots[%d] = %q, want %q", i, missing[i], want[i])
		}
	}
}
