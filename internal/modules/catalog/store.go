// README: Listing repository backed by PostgreSQL (explicit-filter search path).
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `
	id, brand, COALESCE(model, ''), COALESCE(title, ''),
	price, year, km,
	COALESCE(fuel, ''), COALESCE(gearbox, ''), COALESCE(city, ''), COALESCE(type, ''),
	COALESCE(image, ''), COALESCE(whatsapp, '')`

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// List returns every listing, used to build the in-memory collection at startup.
func (s *Store) List(ctx context.Context) ([]Listing, error) {
	rows, err := s.db.Query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list listings: %w", err)
	}
	return collectListings(rows)
}

// Search filters listings in SQL. Listings without a price pass both price bounds,
// matching the in-memory filter.
func (s *Store) Search(ctx context.Context, f Filter) ([]Listing, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE ($1 = '' OR type ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR fuel = $2)
		  AND ($3 = '' OR gearbox = $3)
		  AND ($4 = '' OR lower(city) = lower($4))
		  AND ($5::int = 0 OR price IS NULL OR price <= $5::int)
		  AND ($6::int = 0 OR price IS NULL OR price >= $6::int)
		ORDER BY id`,
		f.Type, f.Fuel, f.Gearbox, f.City, f.PriceMax, f.PriceMin,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: search listings: %w", err)
	}
	return collectListings(rows)
}

// Insert adds a listing and returns its id.
func (s *Store) Insert(ctx context.Context, l Listing) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO listings (brand, model, title, price, year, km, fuel, gearbox, city, type, image, whatsapp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		l.Brand, l.Model, l.Title, l.Price, l.Year, l.Km, l.Fuel, l.Gearbox, l.City, l.Type, l.Image, l.WhatsApp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("catalog: insert listing: %w", err)
	}
	return id, nil
}

func collectListings(rows pgx.Rows) ([]Listing, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Listing, error) {
		var l Listing
		err := row.Scan(
			&l.ID, &l.Brand, &l.Model, &l.Title,
			&l.Price, &l.Year, &l.Km,
			&l.Fuel, &l.Gearbox, &l.City, &l.Type,
			&l.Image, &l.WhatsApp,
		)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: scan listings: %w", err)
	}
	return out, nil
}
