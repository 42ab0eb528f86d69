// README: Slot schema (five search criteria) and the Unset/Any/Concrete value variant.
package slots

import (
	"encoding/json"
	"strconv"
)

type Name string

const (
	Category  Name = "category"
	Fuel      Name = "fuel"
	Gearbox   Name = "gearbox"
	BudgetMax Name = "budget_max"
	City      Name = "city"
)

// Order is the fixed question precedence. It also lists every slot of the schema.
var Order = []Name{Category, Fuel, Gearbox, BudgetMax, City}

// Wire sentinels.
const (
	SentinelUnset = "UNSET"
	SentinelAny   = "ANY"
)

type Kind uint8

const (
	KindUnset Kind = iota
	KindAny
	KindConcrete
)

// Value is one slot value. The zero Value is Unset.
type Value struct {
	kind  Kind
	text  string
	num   int
	isNum bool
}

func Unset() Value { return Value{} }

func Any() Value { return Value{kind: KindAny} }

func Text(s string) Value { return Value{kind: KindConcrete, text: s} }

func Number(n int) Value { return Value{kind: KindConcrete, num: n, isNum: true} }

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsUnset() bool    { return v.kind == KindUnset }
func (v Value) IsAny() bool      { return v.kind == KindAny }
func (v Value) IsConcrete() bool { return v.kind == KindConcrete }

// Resolved reports whether the user answered the slot, with a value or with indifference.
func (v Value) Resolved() bool { return v.kind != KindUnset }

// Int returns the numeric payload of a concrete numeric value.
func (v Value) Int() (int, bool) {
	if v.kind != KindConcrete || !v.isNum {
		return 0, false
	}
	return v.num, true
}

// Str returns the textual payload of a concrete string value.
func (v Value) Str() (string, bool) {
	if v.kind != KindConcrete || v.isNum {
		return "", false
	}
	return v.text, true
}

// Raw is the wire form: a sentinel string, a string, or an int.
func (v Value) Raw() any {
	switch v.kind {
	case KindAny:
		return SentinelAny
	case KindConcrete:
		if v.isNum {
			return v.num
		}
		return v.text
	default:
		return SentinelUnset
	}
}

func (v Value) String() string {
	switch raw := v.Raw().(type) {
	case int:
		return strconv.Itoa(raw)
	case string:
		return raw
	}
	return SentinelUnset
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

// Slots is the full slot mapping. The zero value has every slot Unset.
type Slots struct {
	Category  Value
	Fuel      Value
	Gearbox   Value
	BudgetMax Value
	City      Value
}

func Default() Slots { return Slots{} }

func (s Slots) Get(n Name) Value {
	switch n {
	case Category:
		return s.Category
	case Fuel:
		return s.Fuel
	case Gearbox:
		return s.Gearbox
	case BudgetMax:
		return s.BudgetMax
	case City:
		return s.City
	}
	return Unset()
}

// Set assigns a slot. Unknown names are ignored.
func (s *Slots) Set(n Name, v Value) {
	switch n {
	case Category:
		s.Category = v
	case Fuel:
		s.Fuel = v
	case Gearbox:
		s.Gearbox = v
	case BudgetMax:
		s.BudgetMax = v
	case City:
		s.City = v
	}
}

// Map returns the wire mapping with all five keys present.
func (s Slots) Map() map[string]any {
	out := make(map[string]any, len(Order))
	for _, n := range Order {
		out[string(n)] = s.Get(n).Raw()
	}
	return out
}

// Complete reports whether no slot is Unset.
func (s Slots) Complete() bool {
	for _, n := range Order {
		if s.Get(n).IsUnset() {
			return false
		}
	}
	return true
}

func (s Slots) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON accepts any mapping and normalizes it.
func (s *Slots) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Normalize(raw)
	return nil
}

// IsKnown reports whether n is one of the schema slots.
func IsKnown(n Name) bool {
	for _, o := range Order {
		if o == n {
			return true
		}
	}
	return false
}
