package assistant

import (
	"regexp"
	"strings"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/core"
)

// Fallback values substituted when a loose keyword trigger fires but the
// strict pattern did not extract parameters. Named so tests can assert on
// them symbolically.
const (
	FallbackExpenseAmountCents  int64 = 100_00 // R$100
	FallbackExpenseDescription        = "Despesa adicionada via assistente"
	GoalDeadlineDays                  = 365
	GoalCategory                      = core.CategoryPoupanca
)

// The command patterns work on the lower-cased utterance. Amounts are plain
// base-10 decimals with an optional dot fraction; "1.000" is one real, not a
// thousand. The description is whatever trails the last preposition.
var (
	expensePattern = regexp.MustCompile(`adicion\S*.* (\d+(?:\.\d+)?).* (?:reais?|dollars?|\$|r\$).* (?:em|para|de|com) (.+)`)
	goalPattern    = regexp.MustCompile(`economizar.* (\d+(?:\.\d+)?).* (?:reais?|dollars?|\$|r\$)`)
)

// rule pairs a cheap trigger predicate with a parameter extractor. Rules are
// evaluated in order; the first trigger that fires decides the outcome. An
// extractor returning false falls through to the delegate path, never to a
// later rule's extractor for the same utterance. The ordering (expense before
// goal) must not change.
type rule struct {
	name    string
	trigger func(lower string) bool
	extract func(lower string) (Action, bool)
}

var rules = []rule{
	{
		name: "expense",
		trigger: func(m string) bool {
			return expensePattern.MatchString(m) ||
				strings.Contains(m, "gastos") ||
				strings.Contains(m, "despesa")
		},
		extract: extractExpense,
	},
	{
		name: "goal",
		trigger: func(m string) bool {
			return strings.Contains(m, "meta") ||
				strings.Contains(m, "objetivo") ||
				strings.Contains(m, "economizar")
		},
		extract: extractGoal,
	},
}

// Classify maps a free-text utterance to at most one structured action.
// It is pure: no side effects, no errors. Ambiguous expense amounts get the
// documented fallback values; a goal remark without a parseable amount
// delegates rather than creating a malformed goal.
func Classify(utterance string) Action {
	lower := strings.ToLower(utterance)
	for _, r := range rules {
		if !r.trigger(lower) {
			continue
		}
		if action, ok := r.extract(lower); ok {
			return action
		}
	}
	return Action{Kind: ActionDelegate}
}

// extractExpense prefers the strict pattern; when only the loose
// gastos/despesa keyword fired, the fixed fallback amount and description are
// substituted. Category inference runs over the full utterance either way.
func extractExpense(m string) (Action, bool) {
	action := Action{
		Kind:        ActionCreateExpense,
		AmountCents: FallbackExpenseAmountCents,
		Description: FallbackExpenseDescription,
		Category:    inferCategory(m),
	}
	if sub := expensePattern.FindStringSubmatch(m); sub != nil {
		if cents, ok := parseAmountCents(sub[1]); ok {
			action.AmountCents = cents
		}
		action.Description = strings.TrimSpace(sub[2])
	}
	return action, true
}

// extractGoal requires the strict economizar+amount sub-pattern. A general
// goal-related remark without a parseable amount is intentionally dropped so
// the utterance reaches the completion service instead.
func extractGoal(m string) (Action, bool) {
	sub := goalPattern.FindStringSubmatch(m)
	if sub == nil {
		return Action{}, false
	}
	cents, ok := parseAmountCents(sub[1])
	if !ok {
		return Action{}, false
	}
	return Action{Kind: ActionCreateGoal, AmountCents: cents}, true
}

// inferCategory applies the keyword rules in priority order against the whole
// utterance, regardless of which expense branch matched.
func inferCategory(m string) string {
	switch {
	case strings.Contains(m, "médic"):
		return core.CategorySaude
	case strings.Contains(m, "comida"), strings.Contains(m, "restaurante"):
		return core.CategoryAlimentacao
	case strings.Contains(m, "transporte"), strings.Contains(m, "gasolina"):
		return core.CategoryTransporte
	default:
		return core.CategoryOutros
	}
}

func parseAmountCents(s string) (int64, bool) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return 0, false
	}
	return cents, true
}
