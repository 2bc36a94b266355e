package conversation

import "strings"

// Outcome is the business result signalled by a conversation.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeLead       Outcome = "lead"
	OutcomeEscalation Outcome = "escalation"
)

// markerRule pairs a marker phrase with the outcome it signals. Rules are
// evaluated in order against each AI message.
type markerRule struct {
	Marker  string
	Outcome Outcome
}

// defaultRules are the marker phrases Sparky emits when it completes a
// conversion action or hands a chat off to staff.
var defaultRules = []markerRule{
	{Marker: "I've scheduled your 7-day free trial", Outcome: OutcomeLead},
	{Marker: "I've sent these details to our party coordinators", Outcome: OutcomeLead},
	{Marker: "I've passed your request on to our team", Outcome: OutcomeEscalation},
}

// Detail markers differ from the classification rules on purpose: the leads
// table shows the first AI message containing the generic "I've" prefix,
// while escalations match the specific handoff phrase. This mirrors what the
// bot's operators see today and must not be "fixed" independently.
const (
	leadDetailMarker       = "I've"
	escalationDetailMarker = "I've passed your request"
)

// Classification partitions a batch of conversations. A conversation appears
// in at most one of Leads and Escalations; unmatched conversations count
// toward Total only.
type Classification struct {
	Leads       []Conversation
	Escalations []Conversation
	Total       int
}

// Classifier buckets conversations by scanning AI messages against an
// ordered marker-phrase rule list. First match in chronological message
// order wins; later markers in the same conversation are ignored.
type Classifier struct {
	rules []markerRule
}

// NewClassifier returns a classifier with the standard Sparky marker rules.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// Outcome classifies a single conversation. Non-AI messages and messages
// without content are skipped; a malformed message never fails the scan.
func (c *Classifier) Outcome(conv Conversation) Outcome {
	for _, msg := range conv.History {
		if !msg.IsAI() {
			continue
		}
		content := msg.Content()
		if content == "" {
			continue
		}
		for _, rule := range c.rules {
			if strings.Contains(content, rule.Marker) {
				return rule.Outcome
			}
		}
	}
	return OutcomeNone
}

// Classify partitions the batch. The fold is pure and stateless; it is
// recomputed on every dashboard render.
func (c *Classifier) Classify(convs []Conversation) Classification {
	result := Classification{Total: len(convs)}
	for _, conv := range convs {
		switch c.Outcome(conv) {
		case OutcomeLead:
			result.Leads = append(result.Leads, conv)
		case OutcomeEscalation:
			result.Escalations = append(result.Escalations, conv)
		}
	}
	return result
}

// LeadDetail extracts the message that surfaced the lead: the first AI
// message containing the lead detail marker. Returns ErrDetailNotFound when
// no such message exists, which indicates an inconsistent classification.
func (c *Classifier) LeadDetail(conv Conversation) (string, error) {
	return firstAIMessageContaining(conv, leadDetailMarker)
}

// EscalationDetail extracts the handoff message for an escalated
// conversation, with the same inconsistency semantics as LeadDetail.
func (c *Classifier) EscalationDetail(conv Conversation) (string, error) {
	return firstAIMessageContaining(conv, escalationDetailMarker)
}

func firstAIMessageContaining(conv Conversation, marker string) (string, error) {
	for _, msg := range conv.History {
		if !msg.IsAI() {
			continue
		}
		content := msg.Content()
		if content == "" {
			continue
		}
		if strings.Contains(content, marker) {
			return content, nil
		}
	}
	return "", ErrDetailNotFound
}
