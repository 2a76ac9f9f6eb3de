package catalog

import (
	"fmt"
	"time"
)

// Product represents a catalog content item. Ownership is recorded as the
// principal who created the item; owners may access their own unpublished
// content and can never claim it.
type Product struct {
	id          uint
	sid         string
	contentType ContentType
	title       string
	ownerID     uint
	published   bool
	minimumAge  int
	publishedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a new unpublished product owned by the creating principal.
func NewProduct(contentType ContentType, title string, ownerID uint, sid string) (*Product, error) {
	if !contentType.IsValid() {
		return nil, ErrInvalidContentType(string(contentType))
	}
	if title == "" {
		return nil, ErrProductTitleRequired
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	now := time.Now()
	return &Product{
		sid:         sid,
		contentType: contentType,
		title:       title,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructProduct reconstructs a product from persistence
func ReconstructProduct(
	id uint,
	sid string,
	contentType ContentType,
	title string,
	ownerID uint,
	published bool,
	minimumAge int,
	publishedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("product ID cannot be zero")
	}
	if !contentType.IsValid() {
		return nil, ErrInvalidContentType(string(contentType))
	}
	if minimumAge < 0 {
		return nil, fmt.Errorf("minimum age cannot be negative")
	}

	return &Product{
		id:          id,
		sid:         sid,
		contentType: contentType,
		title:       title,
		ownerID:     ownerID,
		published:   published,
		minimumAge:  minimumAge,
		publishedAt: publishedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the product ID
func (p *Product) ID() uint {
	return p.id
}

// SID returns the Stripe-style public identifier
func (p *Product) SID() string {
	return p.sid
}

// ContentType returns the content type
func (p *Product) ContentType() ContentType {
	return p.contentType
}

// Title returns the product title
func (p *Product) Title() string {
	return p.title
}

// OwnerID returns the principal that created the product
func (p *Product) OwnerID() uint {
	return p.ownerID
}

// IsPublished reports whether the product is visible to non-owners
func (p *Product) IsPublished() bool {
	return p.published
}

// MinimumAge returns the minimum principal age required, zero when ungated
func (p *Product) MinimumAge() int {
	return p.minimumAge
}

// PublishedAt returns when the product was published
func (p *Product) PublishedAt() *time.Time {
	return p.publishedAt
}

// CreatedAt returns when the product was created
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the product was last updated
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// Ref returns the discriminated content reference for this product.
func (p *Product) Ref() ContentRef {
	return ContentRef{Type: p.contentType, ID: p.id}
}

// IsOwnedBy checks whether the given principal created this product.
func (p *Product) IsOwnedBy(principalID uint) bool {
	return principalID != 0 && p.ownerID == principalID
}

// SetID sets the product ID (only for persistence layer use)
func (p *Product) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("product ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("product ID cannot be zero")
	}
	p.id = id
	return nil
}

// Publish marks the product as published.
func (p *Product) Publish() {
	if p.published {
		return
	}
	now := time.Now()
	p.published = true
	p.publishedAt = &now
	p.updatedAt = now
}
