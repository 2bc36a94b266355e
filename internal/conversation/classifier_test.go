package conversation

import (
	"errors"
	"testing"
	"time"
)

func aiMsg(content string) Message {
	return Message{Type: MessageTypeAI, Data: MessageData{Content: content}}
}

func humanMsg(content string) Message {
	return Message{Type: MessageTypeHuman, Data: MessageData{Content: content}}
}

func conv(id string, history ...Message) Conversation {
	return Conversation{
		ConversationID: id,
		History:        history,
		UpdatedAt:      time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestClassifierOutcomes(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		conv Conversation
		want Outcome
	}{
		{
			name: "trial signup is a lead",
			conv: conv("c1",
				humanMsg("Can I try it out?"),
				aiMsg("Great news! I've scheduled your 7-day free trial starting Monday."),
			),
			want: OutcomeLead,
		},
		{
			name: "party details is a lead",
			conv: conv("c2",
				aiMsg("I've sent these details to our party coordinators, they'll be in touch."),
			),
			want: OutcomeLead,
		},
		{
			name: "team handoff is an escalation",
			conv: conv("c3",
				aiMsg("I'm not sure about that. I've passed your request on to our team."),
			),
			want: OutcomeEscalation,
		},
		{
			name: "no marker is unmatched",
			conv: conv("c4",
				humanMsg("What are your opening hours?"),
				aiMsg("We're open from 9am to 9pm every day."),
			),
			want: OutcomeNone,
		},
		{
			name: "human-only history is unmatched",
			conv: conv("c5",
				humanMsg("I've scheduled your 7-day free trial"),
			),
			want: OutcomeNone,
		},
		{
			name: "marker in human message is ignored",
			conv: conv("c6",
				humanMsg("Someone said I've passed your request on to our team?"),
				aiMsg("Let me check that for you."),
			),
			want: OutcomeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Outcome(tt.conv); got != tt.want {
				t.Fatalf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifierFirstMatchWins(t *testing.T) {
	c := NewClassifier()

	// Escalation marker appears first: the later lead marker must be ignored.
	escalationFirst := conv("c1",
		aiMsg("I've passed your request on to our team"),
		aiMsg("I've scheduled your 7-day free trial"),
	)
	if got := c.Outcome(escalationFirst); got != OutcomeEscalation {
		t.Fatalf("Outcome() = %q, want escalation", got)
	}

	leadFirst := conv("c2",
		aiMsg("I've scheduled your 7-day free trial"),
		aiMsg("I've passed your request on to our team"),
	)
	if got := c.Outcome(leadFirst); got != OutcomeLead {
		t.Fatalf("Outcome() = %q, want lead", got)
	}
}

func TestClassifyPartition(t *testing.T) {
	c := NewClassifier()

	convs := []Conversation{
		conv("lead-1", aiMsg("I've scheduled your 7-day free trial")),
		conv("esc-1", aiMsg("I've passed your request on to our team")),
		conv("none-1", aiMsg("Happy to help!")),
		conv("lead-2", aiMsg("I've sent these details to our party coordinators")),
	}

	result := c.Classify(convs)

	if result.Total != 4 {
		t.Fatalf("Total = %d, want 4", result.Total)
	}
	if len(result.Leads) != 2 || len(result.Escalations) != 1 {
		t.Fatalf("partition = %d leads / %d escalations, want 2/1", len(result.Leads), len(result.Escalations))
	}

	// No conversation may appear in both buckets.
	seen := map[string]bool{}
	for _, lead := range result.Leads {
		seen[lead.ConversationID] = true
	}
	for _, esc := range result.Escalations {
		if seen[esc.ConversationID] {
			t.Fatalf("conversation %s in both leads and escalations", esc.ConversationID)
		}
	}
}

func TestClassifySkipsMalformedMessages(t *testing.T) {
	c := NewClassifier()

	// One message without content must not prevent classification of the
	// rest of the history or the rest of the batch.
	convs := []Conversation{
		conv("c1",
			Message{Type: MessageTypeAI}, // no content
			aiMsg("I've scheduled your 7-day free trial"),
		),
		conv("c2", aiMsg("I've passed your request on to our team")),
	}

	result := c.Classify(convs)
	if len(result.Leads) != 1 || result.Leads[0].ConversationID != "c1" {
		t.Fatalf("expected c1 classified as lead despite malformed message, got %#v", result.Leads)
	}
	if len(result.Escalations) != 1 {
		t.Fatalf("expected c2 classified as escalation, got %#v", result.Escalations)
	}
}

func TestLeadDetail(t *testing.T) {
	c := NewClassifier()

	lead := conv("c1",
		humanMsg("Sign me up"),
		aiMsg("I've scheduled your 7-day free trial for Monday."),
	)
	detail, err := c.LeadDetail(lead)
	if err != nil {
		t.Fatalf("LeadDetail failed: %v", err)
	}
	if detail != "I've scheduled your 7-day free trial for Monday." {
		t.Fatalf("unexpected detail: %q", detail)
	}

	// The lead detail marker is the generic "I've" prefix, so an earlier
	// unrelated "I've" message is surfaced. Literal legacy behavior.
	chatty := conv("c2",
		aiMsg("I've checked our schedule and we have slots free."),
		aiMsg("I've scheduled your 7-day free trial for Monday."),
	)
	detail, err = c.LeadDetail(chatty)
	if err != nil {
		t.Fatalf("LeadDetail failed: %v", err)
	}
	if detail != "I've checked our schedule and we have slots free." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestEscalationDetail(t *testing.T) {
	c := NewClassifier()

	esc := conv("c1",
		aiMsg("I've checked our schedule and we have slots free."),
		aiMsg("I've passed your request on to our team."),
	)
	detail, err := c.EscalationDetail(esc)
	if err != nil {
		t.Fatalf("EscalationDetail failed: %v", err)
	}
	if detail != "I've passed your request on to our team." {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

func TestDetailNotFound(t *testing.T) {
	c := NewClassifier()

	// A conversation without a matching message signals an inconsistent
	// classification, never empty detail text.
	empty := conv("c1", humanMsg("hello"))
	if _, err := c.LeadDetail(empty); !errors.Is(err, ErrDetailNotFound) {
		t.Fatalf("expected ErrDetailNotFound, got %v", err)
	}
	if _, err := c.EscalationDetail(empty); !errors.Is(err, ErrDetailNotFound) {
		t.Fatalf("expected ErrDetailNotFound, got %v", err)
	}
}

func TestTranscriptSkipsEmptyMessages(t *testing.T) {
	c := conv("c1",
		humanMsg("Hi there"),
		Message{Type: MessageTypeAI},
		aiMsg("Hello! How can I help?"),
	)
	lines := c.Transcript()
	if len(lines) != 2 {
		t.Fatalf("expected 2 transcript lines, got %d: %#v", len(lines), lines)
	}
	if lines[0] != "Human: Hi there" || lines[1] != "Ai: Hello! How can I help?" {
		t.Fatalf("unexpected transcript: %#v", lines)
	}
}
