package catalog

import "fmt"

// ContentRef identifies a catalog item by its discriminated
// (content type, content id) pair.
type ContentRef struct {
	Type ContentType
	ID   uint
}

// NewContentRef creates a validated content reference.
func NewContentRef(contentType ContentType, contentID uint) (ContentRef, error) {
	if !contentType.IsValid() {
		return ContentRef{}, ErrInvalidContentType(string(contentType))
	}
	if contentID == 0 {
		return ContentRef{}, ErrContentIDRequired
	}
	return ContentRef{Type: contentType, ID: contentID}, nil
}

// String renders the reference as "type/id" for logs and error details.
func (r ContentRef) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}
