package catalog

// SkinType is a skin-type catalog entry.
type SkinType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category groups products, e.g. "Acne treatment".
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Brand is the product manufacturer.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductImage is one image of a product.
type ProductImage struct {
	URL         string `json:"url"`
	IsThumbnail bool   `json:"isThumbnail"`
	SortOrder   int    `json:"sortOrder"`
}

// Product is a catalog product with its category, brand and images.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    Category       `json:"category"`
	Brand       Brand          `json:"brand"`
	Images      []ProductImage `json:"images"`
}

// Thumbnail returns the URL of the first image flagged as thumbnail, or "".
func (p Product) Thumbnail() string {
	for _, img := range p.Images {
		if img.IsThumbnail {
			return img.URL
		}
	}
	return ""
}
