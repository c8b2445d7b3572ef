package domain

import "regexp"

// SiteKeyEnv is the configuration key the site key is read from.
const SiteKeyEnv = "SITE_KEY"

var siteKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// SiteKey identifies the tenant ("site") whose rows a process may read and write.
// The zero value is invalid; a non-zero SiteKey can only be obtained from ParseSiteKey.
type SiteKey struct {
	value string
}

// ParseSiteKey validates raw against ^[A-Za-z0-9_]+$ and returns it unchanged.
func ParseSiteKey(raw string) (SiteKey, error) {
	if raw == "" {
		return SiteKey{}, &ConfigurationError{Key: SiteKeyEnv, Reason: "is not set"}
	}
	if !siteKeyPattern.MatchString(raw) {
		return SiteKey{}, &ConfigurationError{
			Key:    SiteKeyEnv,
			Reason: "must contain only letters, digits and underscores",
		}
	}
	return SiteKey{value: raw}, nil
}

// MustParseSiteKey is like ParseSiteKey but panics on an invalid key.
// Intended for tests and constants.
func MustParseSiteKey(raw string) SiteKey {
	key, err := ParseSiteKey(raw)
	if err != nil {
		panic(err)
	}
	return key
}

// String returns the raw key.
func (k SiteKey) String() string { return k.value }

// IsZero reports whether the key was never validated.
func (k SiteKey) IsZero() bool { return k.value == "" }
