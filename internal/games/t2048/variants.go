package t2048

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant is a board size offered in menus and on the command line.
type Variant struct {
	ID    string
	Title string
	Size  int
}

// Variants lists the built-in board sizes.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Size: 4},
	{ID: "2048_3x3", Title: "2048 (3x3)", Size: 3},
	{ID: "2048_5x5", Title: "2048 (5x5)", Size: 5},
	{ID: "2048_6x6", Title: "2048 (6x6)", Size: 6},
}

// VariantForSize returns the built-in variant for size, or a custom one
// named after its dimensions.
func VariantForSize(size int) Variant {
	for _, v := range Variants {
		if v.Size == size {
			return v
		}
	}
	return Variant{
		ID:    fmt.Sprintf("2048_%dx%d", size, size),
		Title: fmt.Sprintf("2048 (%dx%d)", size, size),
		Size:  size,
	}
}

func init() {
	for _, v := range Variants {
		registry.Register(registry.GameInfo{ID: v.ID, Title: v.Title, Size: v.Size}, func() registry.Game {
			return New(v)
		})
	}
}
