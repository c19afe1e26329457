package domain

// PaletteStore persists resolved palettes between runs.
// Implementations must be safe for concurrent use.
type PaletteStore interface {
	GetPalette(movieID int) (Palette, bool)
	SavePalette(movieID int, p Palette) error

	// InvalidateAll wipes every stored palette
	InvalidateAll()

	Close() error
}
