// README: Deterministic slot extractor (keyword and regex rules over one user message).
package slots

import (
	"regexp"
	"strings"
)

// BudgetFloor is the smallest number accepted as a budget when budget_max was not the
// slot just asked about; smaller numbers are usually a year or a mileage.
const BudgetFloor = 50000

type keywordRule struct {
	value   string
	pattern *regexp.Regexp
}

var (
	indifferencePhrases = []string{
		"peu importe", "pas important", "n'importe", "n’importe", "comme tu veux",
		"aucune préférence", "sans préférence", "pas de préférence", "no preference",
	}
	indifferenceWords = regexp.MustCompile(`\b(any|whatever|anything)\b`)

	// Checked in priority order; the first matching rule wins.
	fuelRules = []keywordRule{
		{"diesel", regexp.MustCompile(`diesel|gasoil|gaz\s?oil|gazole`)},
		{"essence", regexp.MustCompile(`essence|petrol|gasoline`)},
		{"hybride", regexp.MustCompile(`hybr`)},
		{"electrique", regexp.MustCompile(`(^|[^\p{L}])[ée]lectri|\bev\b`)},
	}
	gearboxRules = []keywordRule{
		{"automatique", regexp.MustCompile(`\bauto`)},
		{"manuelle", regexp.MustCompile(`\bmanuel|\bmanual`)},
	}
	categoryRules = []keywordRule{
		{"SUV", regexp.MustCompile(`\bsuv`)},
		{"berline", regexp.MustCompile(`\bberline|\bsedan`)},
		{"citadine", regexp.MustCompile(`\bcitadine|\bcity\s?car`)},
		{"compacte", regexp.MustCompile(`\bcompact`)},
		{"break", regexp.MustCompile(`\bbreak\b|\bwagon`)},
		{"pickup", regexp.MustCompile(`\bpick-?\s?up`)},
		{"coupé", regexp.MustCompile(`\bcoup(é|e\b|es\b)`)},
	}

	groupedDigits = regexp.MustCompile(`(\d)[\s\x{00a0}\x{202f}]+(\d{3})\b`)
	cityPatterns  = compileCityPatterns()
)

func compileCityPatterns() []keywordRule {
	var out []keywordRule
	for _, c := range cities {
		names := append([]string{c.Name}, c.Aliases...)
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(n))
		}
		out = append(out, keywordRule{
			value:   c.Name,
			pattern: regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`),
		})
	}
	return out
}

// Extract applies the rule set to one message and returns an updated copy of current.
// lastAsked is the slot asked in the previous turn, or "" when none.
func Extract(message string, current Slots, lastAsked Name) Slots {
	out := current
	low := strings.ToLower(message)

	if lastAsked != "" && IsKnown(lastAsked) && IsIndifferent(low) {
		out.Set(lastAsked, Any())
	}
	if c, ok := ExtractCity(low); ok {
		out.City = Text(c)
	}
	if f, ok := firstMatch(fuelRules, low); ok {
		out.Fuel = Text(f)
	}
	if g, ok := firstMatch(gearboxRules, low); ok {
		out.Gearbox = Text(g)
	}
	if c, ok := firstMatch(categoryRules, low); ok {
		out.Category = Text(c)
	}
	if n, ok := ExtractNumber(message); ok {
		switch {
		case lastAsked == BudgetMax:
			out.BudgetMax = Number(n)
		case (out.BudgetMax.IsUnset() || out.BudgetMax.IsAny()) && n >= BudgetFloor:
			out.BudgetMax = Number(n)
		}
	}
	return out
}

// IsIndifferent reports whether the message expresses "no preference".
func IsIndifferent(message string) bool {
	low := strings.ToLower(strings.TrimSpace(message))
	for _, p := range indifferencePhrases {
		if strings.Contains(low, p) {
			return true
		}
	}
	return indifferenceWords.MatchString(low)
}

// ExtractCity returns the first enumerated city named in the message.
func ExtractCity(message string) (string, bool) {
	return firstMatch(cityPatterns, strings.ToLower(message))
}

// ExtractNumber returns the first integer of 2 to 9 digits, after joining thousands
// groups written with spaces ("250 000").
func ExtractNumber(message string) (int, bool) {
	joined := message
	for {
		next := groupedDigits.ReplaceAllString(joined, "$1$2")
		if next == joined {
			break
		}
		joined = next
	}
	return firstNumber(joined)
}

func firstMatch(rules []keywordRule, low string) (string, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(low) {
			return r.value, true
		}
	}
	return "", false
}
