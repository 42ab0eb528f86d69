// README: Slot normalizer; total function from any raw mapping to a sanitized Slots.
package slots

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

var (
	digitRun   = regexp.MustCompile(`\d+`)
	spaceChars = regexp.MustCompile(`[\s\x{00a0}\x{202f}]+`)
)

// Normalize sanitizes a raw slot mapping, typically decoded from model output.
// Missing keys, nil and out-of-whitelist values become Unset. The result always
// covers the five slots and Normalize(Normalize(x).Map()) equals Normalize(x).
func Normalize(raw map[string]any) Slots {
	var out Slots
	for _, n := range Order {
		v, ok := raw[string(n)]
		if !ok {
			continue
		}
		out.Set(n, normalizeValue(n, v))
	}
	return out
}

// Sanitize re-applies the normalizer rules to an already typed mapping.
func Sanitize(s Slots) Slots {
	return Normalize(s.Map())
}

func normalizeValue(n Name, v any) Value {
	if v == nil {
		return Unset()
	}
	if str, ok := v.(string); ok {
		trimmed := strings.TrimSpace(str)
		switch strings.ToUpper(trimmed) {
		case "", SentinelUnset:
			return Unset()
		case SentinelAny:
			return Any()
		}
		v = trimmed
	}

	switch n {
	case Category:
		if s, ok := v.(string); ok {
			return Text(s)
		}
	case Fuel:
		if s, ok := v.(string); ok {
			if c, ok := canonicalIn(FuelValues, s); ok {
				return Text(c)
			}
		}
	case Gearbox:
		if s, ok := v.(string); ok {
			if c, ok := canonicalIn(GearboxValues, s); ok {
				return Text(c)
			}
		}
	case City:
		if s, ok := v.(string); ok {
			if c, ok := CanonicalCity(s); ok {
				return Text(c)
			}
		}
	case BudgetMax:
		if b, ok := budgetFrom(v); ok {
			return Number(b)
		}
	}
	return Unset()
}

func budgetFrom(v any) (int, bool) {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int32:
		n = int(t)
	case int64:
		n = int(t)
	case float32:
		n = floatToInt(float64(t))
	case float64:
		n = floatToInt(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			n = int(i)
		} else if f, err := t.Float64(); err == nil {
			n = floatToInt(f)
		}
	case string:
		m, ok := firstNumber(spaceChars.ReplaceAllString(t, ""))
		if !ok {
			return 0, false
		}
		n = m
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= 1e12 {
		return 0
	}
	return int(f)
}

// firstNumber returns the first run of 2 to 9 digits; longer runs are skipped whole.
func firstNumber(s string) (int, bool) {
	for _, run := range digitRun.FindAllString(s, -1) {
		if len(run) < 2 || len(run) > 9 {
			continue
		}
		n := 0
		for _, r := range run {
			n = n*10 + int(r-'0')
		}
		return n, true
	}
	return 0, false
}
