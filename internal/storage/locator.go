package storage

import (
	"errors"
	"fmt"
	"strings"
)

// LocatorScheme is the URI scheme used for remote object locators,
// e.g. s3://bucket/reports/user123/intro_report.docx.
const LocatorScheme = "s3://"

// ErrLocatorFormat reports a locator string that does not match the
// s3://bucket/key shape.
var ErrLocatorFormat = errors.New("invalid object locator")

// ParseLocator splits an s3://bucket/key locator into bucket and key.
// Both components must be non-empty.
func ParseLocator(locator string) (bucket, key string, err error) {
	if !strings.HasPrefix(locator, LocatorScheme) {
		return "", "", fmt.Errorf("%w: %q must start with %s", ErrLocatorFormat, locator, LocatorScheme)
	}

	rest := strings.TrimPrefix(locator, LocatorScheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q must have the form %sbucket/key", ErrLocatorFormat, locator, LocatorScheme)
	}

	return bucket, key, nil
}

// FormatLocator builds the canonical locator string for a bucket and key.
func FormatLocator(bucket, key string) string {
	return LocatorScheme + bucket + "/" + key
}
