// Package menu provides the restaurant menu-book data model and the shared
// page-position controller used by the viewer surfaces.
package menu

// Book holds the image references that make up one menu book.
type Book struct {
	CoverURL string   `json:"coverUrl"`
	BackURL  string   `json:"backUrl"`
	Pages    []string `json:"pages"`
}

// BannerData is the server-side state of one promotional banner slot.
// Image is a remote URL; empty means the slot has no image yet.
type BannerData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Price    string `json:"price,omitempty"`
	BgColor  string `json:"bgColor"`
	Image    string `json:"image"`
}

// Banners groups the three fixed banner slots. Any of the sub-objects may be
// missing in a server payload; consumers must merge over defaults.
type Banners struct {
	Main       *BannerData `json:"main"`
	SideTop    *BannerData `json:"sideTop"`
	SideBottom *BannerData `json:"sideBottom"`
}

// Record is the full restaurant payload returned by fetch-by-slug.
type Record struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	LogoURL        string  `json:"logoUrl"`
	WhatsappNumber string  `json:"whatsappNumber"`
	IsActive       bool    `json:"isActive"`
	Ratio          float64 `json:"ratio,omitempty"`
	Book           Book    `json:"book"`
	Banners        Banners `json:"banners"`
}

// ListItem is one row of the fetch-list response, used to populate the
// restaurant selector in the studio.
type ListItem struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status,omitempty"`
}

// SEOOverrides holds optional search-engine metadata overrides.
type SEOOverrides struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// Details is the full metadata object accepted by update-details.
type Details struct {
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	ShortDescription string       `json:"shortDescription"`
	City             string       `json:"city"`
	Area             string       `json:"area"`
	Cuisine          string       `json:"cuisine"`
	WhatsappNumber   string       `json:"whatsappNumber"`
	FullAddress      string       `json:"fullAddress"`
	GoogleMapsLink   string       `json:"googleMapsLink"`
	Status           string       `json:"status"`
	SEOOverrides     SEOOverrides `json:"seoOverrides"`
}
