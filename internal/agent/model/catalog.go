package model

// Product is one drinkware catalog entry. Price stays a display string
// because the catalog is ingested from scraped storefront data.
type Product struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// ProductSource identifies a catalog entry that contributed to an answer.
type ProductSource struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// Outlet is one store-directory entry, shaped after the ingested outlet CSV
// (name, address, opening_hours, services).
type Outlet struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	OpeningHours string `json:"opening_hours"`
	Services     string `json:"services,omitempty"`
}
