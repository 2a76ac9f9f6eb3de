// Package catalog provides domain models for catalog content items.
// Catalog items are identified by a discriminated (content type, content id)
// pair; the content types form a closed enumeration.
package catalog

// ContentType represents the type of a catalog content item
type ContentType string

const (
	// ContentTypeFile represents a downloadable file resource
	ContentTypeFile ContentType = "file"
	// ContentTypeGame represents an interactive game
	ContentTypeGame ContentType = "game"
	// ContentTypeWorkshop represents a workshop
	ContentTypeWorkshop ContentType = "workshop"
	// ContentTypeCourse represents a course
	ContentTypeCourse ContentType = "course"
	// ContentTypeTool represents a classroom tool
	ContentTypeTool ContentType = "tool"
	// ContentTypeLessonPlan represents a lesson plan
	ContentTypeLessonPlan ContentType = "lesson_plan"
)

// AllContentTypes lists every valid content type in a stable order.
var AllContentTypes = []ContentType{
	ContentTypeFile,
	ContentTypeGame,
	ContentTypeWorkshop,
	ContentTypeCourse,
	ContentTypeTool,
	ContentTypeLessonPlan,
}

// IsValid checks if the content type is part of the closed enumeration
func (ct ContentType) IsValid() bool {
	switch ct {
	case ContentTypeFile, ContentTypeGame, ContentTypeWorkshop,
		ContentTypeCourse, ContentTypeTool, ContentTypeLessonPlan:
		return true
	default:
		return false
	}
}

// String returns the string representation of the content type
func (ct ContentType) String() string {
	return string(ct)
}

// ParseContentType converts a raw string into a ContentType, rejecting
// anything outside the closed enumeration.
func ParseContentType(raw string) (ContentType, error) {
	ct := ContentType(raw)
	if !ct.IsValid() {
		return "", ErrInvalidContentType(raw)
	}
	return ct, nil
}
