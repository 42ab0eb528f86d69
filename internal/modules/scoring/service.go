// README: Candidate filtering and multi-factor scoring of listings.
package scoring

import (
	"slices"
	"strings"
)

// ReferenceYear anchors the recency factor.
const ReferenceYear = 2026

// maxWhyReasons bounds the reasons joined into Why.
const maxWhyReasons = 6

var (
	reliableBrands = brandSet("dacia", "toyota", "hyundai", "kia", "mazda", "renault")
	costlyBrands   = brandSet("bmw", "mercedes", "mercedes-benz", "audi", "porsche", "range rover", "ferrari")
	resaleBrands   = brandSet("dacia", "toyota", "renault")
)

func brandSet(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// Matches reports whether l satisfies every criterion in q. Unknown prices pass both
// budget bounds.
func Matches(l Listing, q Query) bool {
	if q.Category != "" && !strings.Contains(strings.ToLower(l.Type), strings.ToLower(q.Category)) {
		return false
	}
	if q.Fuel != "" && l.Fuel != q.Fuel {
		return false
	}
	if q.Gearbox != "" && l.Gearbox != q.Gearbox {
		return false
	}
	if q.City != "" && !strings.EqualFold(l.City, q.City) {
		return false
	}
	if l.Price != nil {
		if q.BudgetMax > 0 && *l.Price > q.BudgetMax {
			return false
		}
		if q.BudgetMin > 0 && *l.Price < q.BudgetMin {
			return false
		}
	}
	return true
}

// Filter returns the listings matching q, in input order.
func Filter(listings []Listing, q Query) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

// Score computes the integer score and the ordered reasons for one listing.
// Factors whose input is unknown (nil year, km or price) contribute nothing.
func Score(l Listing, q Query) (int, []string) {
	score := 0
	var reasons []string

	if l.Year != nil {
		year := *l.Year
		score += max(0, 20-2*(ReferenceYear-year))
		if year >= 2021 {
			reasons = append(reasons, "Modèle récent")
		}
	}

	if l.Km != nil {
		km := *l.Km
		score += max(0, 20-2*(km/10000))
		if km < 70000 {
			reasons = append(reasons, "Kilométrage raisonnable")
		}
	}

	if l.Price != nil {
		price := *l.Price
		if q.BudgetMax > 0 && price <= q.BudgetMax {
			score += 10
			reasons = append(reasons, "Respecte ton budget")
		}
		if q.BudgetMin > 0 && price >= q.BudgetMin {
			score += 10
			reasons = append(reasons, "Dans ta gamme de prix")
		}
		switch {
		case price < 180000:
			score += 25
			reasons = append(reasons, "Excellent prix")
		case price < 300000:
			score += 15
			reasons = append(reasons, "Prix correct")
		default:
			score += 5
			reasons = append(reasons, "Prix élevé")
		}
	}

	brand := strings.ToLower(strings.TrimSpace(l.Brand))
	if _, ok := reliableBrands[brand]; ok {
		score += 10
		reasons = append(reasons, "Marque fiable")
	}
	if _, ok := costlyBrands[brand]; ok {
		score += 2
		reasons = append(reasons, "Entretien coûteux")
	} else {
		score += 10
		reasons = append(reasons, "Entretien économique")
	}

	switch l.Fuel {
	case "diesel":
		score += 10
		reasons = append(reasons, "Diesel économique")
	case "electrique":
		score += 10
		reasons = append(reasons, "Électrique économique")
	}

	if _, ok := resaleBrands[brand]; ok {
		score += 5
		reasons = append(reasons, "Revente facile")
	}
	return score, reasons
}

// LabelFor maps a score onto its qualitative label.
func LabelFor(score int) Label {
	switch {
	case score >= 70:
		return LabelExcellent
	case score >= 55:
		return LabelGood
	case score >= 40:
		return LabelFair
	default:
		return LabelAvoid
	}
}

// Rank filters, scores and sorts listings by descending score. Ties keep input order.
// limit <= 0 keeps every match. An empty result is a nil-free empty slice.
func Rank(listings []Listing, q Query, limit int) []Result {
	matched := Filter(listings, q)
	out := make([]Result, 0, len(matched))
	for _, l := range matched {
		score, reasons := Score(l, q)
		out = append(out, Result{
			Listing: l,
			Score:   score,
			Reasons: reasons,
			Why:     why(reasons),
			Label:   LabelFor(score),
		})
	}
	slices.SortStableFunc(out, func(a, b Result) int { return b.Score - a.Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func why(reasons []string) string {
	if len(reasons) > maxWhyReasons {
		reasons = reasons[:maxWhyReasons]
	}
	return strings.Join(reasons, " • ")
}
