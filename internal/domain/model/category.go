package model

import (
	"fmt"
	"slices"
)

// Category is a top-level storefront grouping with its allowed subcategories.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// categories is the fixed catalog taxonomy, in display order.
var categories = []Category{
	{Name: "Body", Subcategories: []string{"Body Wash", "Lotion", "Scrub"}},
	{Name: "Hair", Subcategories: []string{"Shampoo", "Conditioner", "Hair Mask", "Hair Oil", "Serum"}},
	{Name: "Makeup", Subcategories: []string{
		"Foundation", "Concealer", "Lipstick", "Lip Gloss", "Blush", "Eyeshadow", "Mascara", "Eyeliner",
	}},
	{Name: "Perfumes", Subcategories: []string{"Women", "Men", "Unisex"}},
	{Name: "Skin Care", Subcategories: []string{
		"Cleanser", "Toner", "Moisturizer", "Sunscreen", "Face Mask", "Serum", "Scrub",
	}},
	{Name: "Services", Subcategories: []string{
		"Makeup", "Hair Styling", "Facial Hair Removal", "Hair Oil Treatment", "Hair Botox", "Hair Coloring",
	}},
	{Name: "Hair Tools", Subcategories: []string{"Hair Dryer", "Hair Straightener"}},
}

// Categories returns a copy of the catalog taxonomy.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: c.Name, Subcategories: slices.Clone(c.Subcategories)}
	}
	return out
}

// LookupCategory returns the category with the given name.
func LookupCategory(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// ValidateCategory checks that category exists and that subcategory belongs to it.
func ValidateCategory(category, subcategory string) error {
	c, ok := LookupCategory(category)
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	if !slices.Contains(c.Subcategories, subcategory) {
		return fmt.Errorf("subcategory %q does not belong to category %q", subcategory, category)
	}
	return nil
}
