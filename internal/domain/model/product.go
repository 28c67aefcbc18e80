// Package model defines the core data types used by the storefront catalog.
package model

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// maxProductNameLen is the maximum allowed length for product names in characters.
	maxProductNameLen = 255
	// maxDescriptionLen bounds free-form product descriptions.
	maxDescriptionLen = 5000

	// DefaultListLimit is used when a list request carries no limit.
	DefaultListLimit = 50
	// MaxListLimit caps list pages.
	MaxListLimit = 200
	// RelatedLimit is the number of related products returned with a product detail.
	RelatedLimit = 4
	// MaxLookupIDs bounds a favorites lookup.
	MaxLookupIDs = 100
)

// Product is a catalog item shown on the storefront.
type Product struct {
	ID            string    `json:"id"              db:"id"`
	Name          string    `json:"name"            db:"name"`
	Price         float64   `json:"price"           db:"price"`
	Description   string    `json:"description"     db:"description"`
	Category      string    `json:"category"        db:"category"`
	Subcategory   string    `json:"subcategory"     db:"subcategory"`
	ImageURL      string    `json:"image_url"       db:"image_url"`
	ImagePublicID string    `json:"image_public_id" db:"image_public_id"`
	CreatedAt     time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"      db:"updated_at"`
}

// CreateProductRequest represents a request to create a new product.
type CreateProductRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	Subcategory   string  `json:"subcategory"`
	ImageURL      string  `json:"image_url,omitempty"`
	ImagePublicID string  `json:"image_public_id,omitempty"`
}

// UpdateProductRequest represents a partial update. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	ImagePublicID *string  `json:"image_public_id,omitempty"`
}

// Normalize trims surrounding whitespace from text fields.
func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Subcategory = strings.TrimSpace(r.Subcategory)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.ImagePublicID = strings.TrimSpace(r.ImagePublicID)
	if r.ImagePublicID == "" && r.ImageURL != "" {
		r.ImagePublicID = ExtractPublicID(r.ImageURL)
	}
}

// Validate validates the CreateProductRequest fields.
func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxProductNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if err := validatePrice(r.Price); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.Subcategory) == "" {
		return errors.New("subcategory is required")
	}
	return ValidateCategory(r.Category, r.Subcategory)
}

// HasUpdates reports whether any field is set.
func (r *UpdateProductRequest) HasUpdates() bool {
	return r.Name != nil || r.Price != nil || r.Description != nil || r.Category != nil ||
		r.Subcategory != nil || r.ImageURL != nil || r.ImagePublicID != nil
}

// Validate validates the UpdateProductRequest fields and ensures at least one field is being updated.
// Category membership is checked against the merged product by ApplyTo.
func (r *UpdateProductRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(*r.Name) > maxProductNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.Price != nil {
		if err := validatePrice(*r.Price); err != nil {
			return err
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	return nil
}

// ApplyTo merges the update into a copy of p and validates the category pair of the result.
func (r *UpdateProductRequest) ApplyTo(p Product) (Product, error) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Description != nil {
		p.Description = strings.TrimSpace(*r.Description)
	}
	if r.Category != nil {
		p.Category = strings.TrimSpace(*r.Category)
	}
	if r.Subcategory != nil {
		p.Subcategory = strings.TrimSpace(*r.Subcategory)
	}
	if r.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*r.ImageURL)
		if r.ImagePublicID == nil {
			p.ImagePublicID = ExtractPublicID(p.ImageURL)
		}
	}
	if r.ImagePublicID != nil {
		p.ImagePublicID = strings.TrimSpace(*r.ImagePublicID)
	}
	if err := ValidateCategory(p.Category, p.Subcategory); err != nil {
		return Product{}, err
	}
	return p, nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.New("price must be a finite number")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// ProductFilter narrows a catalog listing. Empty fields match everything.
type ProductFilter struct {
	Category    string
	Subcategory string
	// Search is a case-insensitive substring matched against name, category and subcategory.
	Search string
	Limit  int
	Offset int
}

// Normalize clamps paging values and trims text fields.
func (f *ProductFilter) Normalize() {
	f.Category = strings.TrimSpace(f.Category)
	f.Subcategory = strings.TrimSpace(f.Subcategory)
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ProductDetail is a product together with items from the same category.
type ProductDetail struct {
	Product *Product   `json:"product"`
	Related []*Product `json:"related"`
}
