package driven

import "github.com/ankushsurana/shopsage/internal/core/domain"

// ConfigStore loads and persists the application settings.
type ConfigStore interface {
	// Load reads the settings, applying defaults for missing values.
	Load() (domain.Settings, error)

	// Save writes the settings durably.
	Save(settings domain.Settings) error

	// Path returns the backing file path for diagnostics.
	Path() string
}
