package testutil

import "github.com/ayabeauty/storefront/internal/domain/model"

// ProductRequestBuilder provides a fluent interface for building CreateProductRequest values in tests.
type ProductRequestBuilder struct {
	req model.CreateProductRequest
}

// NewProductRequest creates a builder with a valid default product.
func NewProductRequest() *ProductRequestBuilder {
	return &ProductRequestBuilder{req: model.CreateProductRequest{
		Name:        "Argan Hair Oil",
		Price:       18.5,
		Description: "Cold pressed argan oil.",
		Category:    "Hair",
		Subcategory: "Hair Oil",
	}}
}

// WithName sets the product name.
func (b *ProductRequestBuilder) WithName(name string) *ProductRequestBuilder {
	b.req.Name = name
	return b
}

// WithPrice sets the price.
func (b *ProductRequestBuilder) WithPrice(price float64) *ProductRequestBuilder {
	b.req.Price = price
	return b
}

// InCategory sets category and subcategory.
func (b *ProductRequestBuilder) InCategory(category, subcategory string) *ProductRequestBuilder {
	b.req.Category = category
	b.req.Subcategory = subcategory
	return b
}

// WithImage sets the image URL and public id.
func (b *ProductRequestBuilder) WithImage(url, publicID string) *ProductRequestBuilder {
	b.req.ImageURL = url
	b.req.ImagePublicID = publicID
	return b
}

// Build returns a copy of the request.
func (b *ProductRequestBuilder) Build() *model.CreateProductRequest {
	req := b.req
	return &req
}
