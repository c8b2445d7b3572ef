package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// UpsertInput holds the fields to write to today's row. Nil fields are kept.
type UpsertInput struct {
	Steps        *int
	EntryCount   *int
	CurrentMusic *string
}

// Validate checks all fields and collects all errors.
func (i UpsertInput) Validate() error {
	var errs []domain.FieldError
	if i.Steps != nil && *i.Steps < 0 {
		errs = append(errs, domain.FieldError{Field: "steps", Message: "must be non-negative"})
	}
	if i.EntryCount != nil && *i.EntryCount < 0 {
		errs = append(errs, domain.FieldError{Field: "entry_count", Message: "must be non-negative"})
	}
	if i.CurrentMusic != nil && utf8.RuneCountInString(strings.TrimSpace(*i.CurrentMusic)) > MaxMusicLen {
		errs = append(errs, domain.FieldError{Field: "current_music", Message: fmt.Sprintf("max %d characters", MaxMusicLen)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i UpsertInput) toUpdate() domain.MetricsUpdate {
	u := domain.MetricsUpdate{Steps: i.Steps, EntryCount: i.EntryCount}
	if i.CurrentMusic != nil {
		music := strings.TrimSpace(*i.CurrentMusic)
		u.CurrentMusic = &music
	}
	return u
}
