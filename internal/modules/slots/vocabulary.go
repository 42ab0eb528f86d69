// README: Enumerations shared by the extractor, the normalizer and the model prompt.
package slots

import "strings"

var (
	// FuelValues is the fuel whitelist in canonical spelling.
	FuelValues = []string{"diesel", "essence", "hybride", "electrique"}
	// GearboxValues is the gearbox whitelist in canonical spelling.
	GearboxValues = []string{"automatique", "manuelle"}
	// CategoryValues are the category spellings written by the extractor.
	CategoryValues = []string{"SUV", "berline", "citadine", "compacte", "break", "pickup", "coupé"}
)

type cityEntry struct {
	Name    string
	Aliases []string
}

var cities = []cityEntry{
	{Name: "Casablanca", Aliases: []string{"casa"}},
	{Name: "Rabat"},
	{Name: "Tanger", Aliases: []string{"tangier"}},
	{Name: "Marrakech", Aliases: []string{"marrakesh"}},
	{Name: "Agadir"},
	{Name: "Fès", Aliases: []string{"fes", "fez"}},
	{Name: "Meknès", Aliases: []string{"meknes"}},
	{Name: "Kénitra", Aliases: []string{"kenitra"}},
	{Name: "Oujda"},
}

// Cities returns the canonical city names in enumeration order.
func Cities() []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.Name
	}
	return out
}

// CanonicalCity resolves a city name or alias, ignoring case and surrounding space.
func CanonicalCity(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range cities {
		if strings.EqualFold(s, c.Name) {
			return c.Name, true
		}
		for _, a := range c.Aliases {
			if strings.EqualFold(s, a) {
				return c.Name, true
			}
		}
	}
	return "", false
}

func canonicalIn(values []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(s, v) {
			return v, true
		}
	}
	return "", false
}
