package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/w-h-a/stockist/index"
	getsafe "github.com/w-h-a/stockist/util/get_safe"
)

// Metadata is the canonical, fully-defaulted product metadata. Every
// field has a well-defined empty value so consumers never need
// null-checks.
type Metadata struct {
	ProductId       string
	Name            string
	Price           float64
	Category        string
	Subcategory     string
	Color           string
	Fabric          string
	Technique       string
	Pattern         string
	Description     string
	InStock         bool
	ColorsAvailable string
}

// Match is one canonical retrieval result. Score is similarity, higher
// is better, and not guaranteed normalized by the collaborator.
type Match struct {
	Id       string
	Score    float64
	Metadata Metadata
}

// Product is the presentation record derived from a Match: formatted
// price, score rounded to 4 decimals, every key always present.
type Product struct {
	Id              string  `json:"id"`
	ProductId       string  `json:"product_id"`
	Name            string  `json:"name"`
	Price           string  `json:"price"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory"`
	Color           string  `json:"color"`
	Fabric          string  `json:"fabric"`
	Technique       string  `json:"technique"`
	Pattern         string  `json:"pattern"`
	Description     string  `json:"description"`
	InStock         bool    `json:"in_stock"`
	ColorsAvailable string  `json:"colors_available"`
	Score           float64 `json:"score"`
}

func newMatch(hit index.Hit) Match {
	fields := hit.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	name := getsafe.String(fields, "product_name")
	if len(name) == 0 {
		name = getsafe.String(fields, "name")
	}
	if len(name) == 0 {
		name = "Unknown"
	}

	productId := getsafe.String(fields, "product_id")
	if len(productId) == 0 {
		productId = hit.Id
	}

	return Match{
		Id:    hit.Id,
		Score: hit.Score,
		Metadata: Metadata{
			ProductId:       productId,
			Name:            name,
			Price:           getsafe.Float(fields, "price"),
			Category:        getsafe.String(fields, "category"),
			Subcategory:     getsafe.String(fields, "subcategory"),
			Color:           getsafe.String(fields, "color"),
			Fabric:          getsafe.String(fields, "fabric"),
			Technique:       getsafe.String(fields, "technique"),
			Pattern:         getsafe.String(fields, "pattern"),
			Description:     getsafe.String(fields, "description"),
			InStock:         getsafe.Bool(fields, "in_stock", true),
			ColorsAvailable: getsafe.String(fields, "colors_available"),
		},
	}
}

// Present derives the outward product record from a match.
func Present(m Match) Product {
	return Product{
		Id:              m.Id,
		ProductId:       m.Metadata.ProductId,
		Name:            m.Metadata.Name,
		Price:           FormatPrice(m.Metadata.Price),
		Category:        m.Metadata.Category,
		Subcategory:     m.Metadata.Subcategory,
		Color:           m.Metadata.Color,
		Fabric:          m.Metadata.Fabric,
		Technique:       m.Metadata.Technique,
		Pattern:         m.Metadata.Pattern,
		Description:     m.Metadata.Description,
		InStock:         m.Metadata.InStock,
		ColorsAvailable: m.Metadata.ColorsAvailable,
		Score:           math.Round(m.Score*10000) / 10000,
	}
}

func PresentAll(matches []Match) []Product {
	products := make([]Product, 0, len(matches))
	for _, m := range matches {
		products = append(products, Present(m))
	}
	return products
}

// FormatPrice renders rupees with thousands separators; an unknown
// price renders as the explicit N/A marker, never an invented number.
func FormatPrice(price float64) string {
	if price <= 0 {
		return "N/A"
	}

	whole := fmt.Sprintf("%.0f", math.Round(price))

	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	return "₹" + strings.Join(groups, ",")
}
