package domain

// EntryFilter narrows entry listings. The zero value matches every entry of the site.
type EntryFilter struct {
	// Source matches entries with exactly this source. Empty means any source.
	Source string

	// Limit caps the number of entries returned. Zero or negative means no cap.
	Limit int
}
