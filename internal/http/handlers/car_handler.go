// README: Explicit-filter car search handler.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/scoring"
	"smartdrive/internal/modules/slots"
)

const maxSearchLimit = 100

// Searcher filters listings in a backing store. *catalog.Store implements it.
type Searcher interface {
	Search(ctx context.Context, f catalog.Filter) ([]catalog.Listing, error)
}

// Listings is the in-memory fallback. *catalog.Collection implements it.
type Listings interface {
	All() []catalog.Listing
}

type CarHandler struct {
	searcher     Searcher
	listings     Listings
	defaultLimit int
}

// NewCarHandler searches through searcher when it is non-nil, else through listings.
func NewCarHandler(searcher Searcher, listings Listings, defaultLimit int) *CarHandler {
	if defaultLimit <= 0 {
		defaultLimit = 15
	}
	return &CarHandler{searcher: searcher, listings: listings, defaultLimit: defaultLimit}
}

type carsResp struct {
	Cars  []scoring.Result `json:"cars"`
	Count int              `json:"count"`
}

// Search handles GET /api/cars.
func (h *CarHandler) Search(c *gin.Context) {
	filter, limit, ok := h.parseQuery(c)
	if !ok {
		return
	}

	candidates := h.listings.All()
	if h.searcher != nil {
		found, err := h.searcher.Search(c.Request.Context(), filter)
		if err != nil {
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
		candidates = found
	}

	cars := scoring.Rank(candidates, scoring.QueryFromFilter(filter), limit)
	writeJSON(c, http.StatusOK, carsResp{Cars: cars, Count: len(cars)})
}

func (h *CarHandler) parseQuery(c *gin.Context) (catalog.Filter, int, bool) {
	f := catalog.Filter{
		Type:    strings.TrimSpace(c.Query("type")),
		Fuel:    strings.ToLower(strings.TrimSpace(c.Query("fuel"))),
		Gearbox: strings.ToLower(strings.TrimSpace(c.Query("gearbox"))),
		City:    strings.TrimSpace(c.Query("city")),
	}
	if city, ok := slots.CanonicalCity(f.City); ok {
		f.City = city
	}

	var err error
	if f.PriceMin, err = intParam(c, "price_min"); err != nil {
		writeError(c, http.StatusBadRequest, "invalid price_min")
		return f, 0, false
	}
	if f.PriceMax, err = intParam(c, "price_max"); err != nil {
		writeError(c, http.StatusBadRequest, "invalid price_max")
		return f, 0, false
	}
	if f.PriceMax > 0 && f.PriceMin > f.PriceMax {
		writeError(c, http.StatusBadRequest, "price_min exceeds price_max")
		return f, 0, false
	}

	limit, err := intParam(c, "limit")
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid limit")
		return f, 0, false
	}
	if limit == 0 {
		limit = h.defaultLimit
	}
	return f, min(limit, maxSearchLimit), true
}

// intParam parses an optional non-negative integer query parameter.
func intParam(c *gin.Context, name string) (int, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
