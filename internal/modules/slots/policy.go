// README: Missing-slot policy; fixed question order and question templates.
package slots

var questions = map[Name]string{
	Category:  "Tu veux quel type de voiture ? (SUV, berline, citadine, …)",
	Fuel:      "Tu préfères quel carburant ? (essence, diesel, hybride, électrique) ou peu importe",
	Gearbox:   "Boîte manuelle ou automatique ? (ou peu importe)",
	BudgetMax: "C’est quoi ton budget maximum (en MAD) ? (ou peu importe)",
	City:      "Dans quelle ville tu cherches ? (Casablanca, Rabat, …) ou peu importe",
}

// FallbackQuestion is asked for an unrecognized slot.
const FallbackQuestion = "Tu peux préciser un peu plus ?"

// NextMissing returns the first Unset slot in Order. ok is false when every slot is resolved.
func NextMissing(s Slots) (Name, bool) {
	for _, n := range Order {
		if s.Get(n).IsUnset() {
			return n, true
		}
	}
	return "", false
}

func Question(n Name) string {
	if q, ok := questions[n]; ok {
		return q
	}
	return FallbackQuestion
}
