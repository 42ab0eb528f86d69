// README: Car listing record and the explicit search filter.
package catalog

// Listing is one car for sale. Nil numeric fields mean "unknown"; zero is a real value
// (a new car has 0 km).
type Listing struct {
	ID       int64  `json:"id,omitempty"`
	Brand    string `json:"brand" validate:"required"`
	Model    string `json:"model"`
	Title    string `json:"title"`
	Price    *int   `json:"price" validate:"omitempty,gte=0"`
	Year     *int   `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	Km       *int   `json:"km" validate:"omitempty,gte=0"`
	Fuel     string `json:"fuel"`
	Gearbox  string `json:"gearbox"`
	City     string `json:"city"`
	Type     string `json:"type"`
	Image    string `json:"image,omitempty" validate:"omitempty,url"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// Int returns a pointer to v, for building listings with known numeric fields.
func Int(v int) *int { return &v }

// Filter holds explicit search criteria. Empty strings and zero prices match everything.
type Filter struct {
	Type     string
	Fuel     string
	Gearbox  string
	City     string
	PriceMin int
	PriceMax int
}
