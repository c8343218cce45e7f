// Package assistant implements the MTN chat assistant's command
// interpreter: a small rule-based classifier that turns free-text Portuguese
// utterances into structured expense/goal creations, delegating everything
// else to a text-completion service.
package assistant

// ActionKind discriminates what the interpreter decided to do with an
// utterance.
type ActionKind int

const (
	// ActionDelegate means no structured command matched; the utterance is
	// forwarded to the completion service.
	ActionDelegate ActionKind = iota
	ActionCreateExpense
	ActionCreateGoal
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreateExpense:
		return "create_expense"
	case ActionCreateGoal:
		return "create_goal"
	default:
		return "delegate"
	}
}

// Action is the classified form of one utterance. Amounts are in cents.
// Description and Category are only meaningful for ActionCreateExpense.
type Action struct {
	Kind        ActionKind
	AmountCents int64
	Description string
	Category    string
}
