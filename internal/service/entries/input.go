package entries

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// ListInput holds the parameters for listing entries.
type ListInput struct {
	Source string
	Limit  int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	errs = append(errs, validateLimit(i.Limit)...)
	if utf8.RuneCountInString(i.Source) > MaxSourceLen {
		errs = append(errs, domain.FieldError{Field: "source", Message: fmt.Sprintf("max %d characters", MaxSourceLen)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateLimit(limit int) []domain.FieldError {
	if limit < 0 {
		return []domain.FieldError{{Field: "limit", Message: "must be non-negative"}}
	}
	if limit > MaxLimit {
		return []domain.FieldError{{Field: "limit", Message: fmt.Sprintf("max %d", MaxLimit)}}
	}
	return nil
}

// CreateInput holds the caller-controlled fields of a new entry. There is no
// site field: the site always comes from configuration.
type CreateInput struct {
	Content  string
	Tags     []string
	Source   string
	Metadata map[string]any
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: fmt.Sprintf("max %d characters", MaxContentLen)})
	}

	tags := normalizeTags(i.Tags)
	if len(tags) > MaxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: fmt.Sprintf("max %d tags", MaxTags)})
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > MaxTagLen {
			errs = append(errs, domain.FieldError{Field: "tags", Message: fmt.Sprintf("each tag max %d characters", MaxTagLen)})
			break
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(i.Source)) > MaxSourceLen {
		errs = append(errs, domain.FieldError{Field: "source", Message: fmt.Sprintf("max %d characters", MaxSourceLen)})
	}

	for _, key := range []string{domain.MetaParentID, domain.MetaBookID} {
		v, ok := i.Metadata[key]
		if !ok {
			continue
		}
		if _, isString := v.(string); !isString {
			errs = append(errs, domain.FieldError{Field: "metadata." + key, Message: "must be a string"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// normalize returns the value passed to the store: trimmed content and
// source, blank tags dropped.
func (i CreateInput) normalize() domain.NewEntry {
	return domain.NewEntry{
		Content:  strings.TrimSpace(i.Content),
		Tags:     normalizeTags(i.Tags),
		Source:   strings.TrimSpace(i.Source),
		Metadata: i.Metadata,
	}
}

// normalizeTags trims every tag and drops blanks. Order is kept.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
