// README: Read-only in-memory listing collection loaded at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Collection is immutable after construction and safe for concurrent reads.
type Collection struct {
	listings []Listing
}

func NewCollection(listings []Listing) *Collection {
	return &Collection{listings: slices.Clone(listings)}
}

// All returns the listings in load order. Callers must not modify the result.
func (c *Collection) All() []Listing {
	if c == nil {
		return nil
	}
	return c.listings
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.listings)
}

// LoadFile reads a JSON array of listings. Records failing validation are skipped
// and logged; a malformed file is an error.
func LoadFile(path string, log *slog.Logger) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var raw []Listing
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return NewCollection(validListings(raw, log)), nil
}

func validListings(in []Listing, log *slog.Logger) []Listing {
	if log == nil {
		log = slog.Default()
	}
	out := make([]Listing, 0, len(in))
	for i, l := range in {
		if err := validate.Struct(l); err != nil {
			log.Warn("skipping invalid listing", "index", i, "brand", l.Brand, "err", err)
			continue
		}
		out = append(out, l)
	}
	return out
}
