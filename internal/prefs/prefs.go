// Package prefs persists the user's dashboard preferences as fixed-name
// key-value pairs that survive restarts.
package prefs

import (
	"context"
	"errors"
)

// Fixed preference keys.
const (
	// KeySourceURL is the connected CSV source URL.
	KeySourceURL = "source_url"
	// KeyTheme is the light/dark theme flag.
	KeyTheme = "theme"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrNotFound is returned when a preference key has no stored value.
var ErrNotFound = errors.New("preference not found")

// Repository stores preference key-value pairs.
type Repository interface {
	// Get retrieves the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores the value for key, creating or overwriting it.
	Set(ctx context.Context, key, value string) error
	// Delete removes the value for key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
