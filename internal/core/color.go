package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tilePalette cycles through distinct colors as tile values double.
var tilePalette = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorBrightRed,     // 32
	ColorRed,           // 64
	ColorBrightYellow,  // 128
	ColorBrightGreen,   // 256
	ColorGreen,         // 512
	ColorBrightCyan,    // 1024
	ColorBrightMagenta, // 2048
	ColorMagenta,       // 4096
	ColorBrightBlue,    // 8192
}

// TileColor returns the display color for a tile value.
// Empty cells are gray; values past the palette wrap around.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	exp := 0
	for v := value; v > 2; v >>= 1 {
		exp++
	}
	return tilePalette[exp%len(tilePalette)]
}
