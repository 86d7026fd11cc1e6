package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 6)

	if s.Width() != 20 || s.Height() != 6 {
		t.Fatalf("NewScreen(20, 6) = %dx%d", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '8', ColorYellow)
	if c := s.GetCell(3, 4); c.Rune != '8' || c.Color != ColorYellow {
		t.Errorf("GetCell(3, 4) = %+v, want yellow '8'", c)
	}

	// Plain Set resets the color.
	s.Set(3, 4, 'x')
	if c := s.GetCell(3, 4); c.Color != ColorDefault {
		t.Errorf("Set should use the default color, got %v", c.Color)
	}

	// Out of bounds is silent.
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "2048", ColorBrightMagenta)
	s.Clear()

	if s.String() != "    \n    " {
		t.Errorf("Clear() left %q", s.String())
	}
	if s.GetCell(0, 0).Color != ColorDefault {
		t.Error("Clear() should reset colors")
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColored(2, 0, "128", ColorBrightYellow)

	if s.Row(0) != "  128     " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	for x := 2; x < 5; x++ {
		if s.GetCell(x, 0).Color != ColorBrightYellow {
			t.Errorf("cell %d color = %v, want bright yellow", x, s.GetCell(x, 0).Color)
		}
	}

	// Clipped at the right edge.
	s.DrawText(8, 0, "long")
	if s.Row(0)[8:] != "lo" {
		t.Errorf("clipped text = %q", s.Row(0)[8:])
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "GO")
	if s.Row(0) != "    GO    " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(5, 5)
	s.FillRect(NewRect(1, 1, 3, 2), '#')

	want := []string{"     ", " ### ", " ### ", "     ", "     "}
	for y, row := range want {
		if s.Row(y) != row {
			t.Errorf("Row(%d) = %q, want %q", y, s.Row(y), row)
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, want %q", pos, got, want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorCyan)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize, dimensions = %dx%d, want 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("colors should be preserved on resize")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 2)
	if s.Row(-1) != "   " || s.Row(5) != "   " {
		t.Error("out of bounds rows should be spaces")
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		value int
		want  Color
	}{
		{0, ColorGray},
		{2, ColorWhite},
		{4, ColorBrightWhite},
		{2048, ColorBrightMagenta},
		{8192, ColorBrightBlue},
		{16384, ColorWhite}, // wraps around
	}

	for _, tt := range tests {
		if got := TileColor(tt.value); got != tt.want {
			t.Errorf("TileColor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Errorf("Has() mismatch: %v", f.Actions)
	}
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear() should drop all actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on a zero frame should allocate")
	}
	if ActionRight.String() != "Right" {
		t.Errorf("ActionRight.String() = %q", ActionRight.String())
	}
}
