package domain

import (
	"time"

	"github.com/google/uuid"
)

// Well-known entry sources. Source is free-form; these are the ones the site filters on.
const (
	SourceBook     = "book"
	SourceProtocol = "protocol"
)

// Metadata keys that link a chapter entry to its parent (book) entry.
const (
	MetaParentID = "parent_id"
	MetaBookID   = "book_id"
)

// Entry is one content record (book, protocol, fragment) owned by a single site.
type Entry struct {
	ID        uuid.UUID
	SiteKey   string
	Content   string
	Tags      []string
	Source    string
	CreatedAt time.Time
	Metadata  map[string]any
}

// NewEntry holds the caller-controlled fields of an entry. ID, SiteKey and
// CreatedAt are assigned by the store.
type NewEntry struct {
	Content  string
	Tags     []string
	Source   string
	Metadata map[string]any
}
