package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	c.Set(3, 7)
	c.Set(-1, 2)
	c.Set(100, 100)

	if !c.IsSet(0, 0) || !c.IsSet(3, 7) {
		t.Error("expected pixels to be set")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected braille dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != 0x2880 {
		t.Errorf("expected braille dot 8, got %U", c.Grid[1][1])
	}
	if c.IsSet(-1, 2) || c.IsSet(100, 100) {
		t.Error("out of range pixels must read as unset")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("horizontal line missing pixel %d", x)
		}
	}

	c.Clear()
	c.DrawLine(2, 2, 2, 12)
	for y := 2; y <= 12; y++ {
		if !c.IsSet(2, y) {
			t.Fatalf("vertical line missing pixel %d", y)
		}
	}
	if c.IsSet(0, 0) {
		t.Error("clear did not reset canvas")
	}
}

func TestCanvasCircles(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)

	for _, pt := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		if !c.IsSet(pt[0], pt[1]) {
			t.Errorf("circle missing extreme point %v", pt)
		}
	}
	if c.IsSet(10, 10) {
		t.Error("outline must not fill the centre")
	}

	c.Clear()
	c.FillCircle(10, 10, 2)
	if !c.IsSet(10, 10) || !c.IsSet(12, 10) || c.IsSet(12, 12) {
		t.Error("fill circle has the wrong footprint")
	}

	c.Clear()
	c.DrawCircle(5, 5, 0)
	if !c.IsSet(5, 5) {
		t.Error("zero radius should set the centre pixel")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if want := strings.Repeat(string(rune(0x2800)), 3); lines[0] != want {
		t.Errorf("expected blank braille row, got %q", lines[0])
	}
}

func TestCanvasNear(t *testing.T) {
	c := NewCanvas(10, 5)
	if !c.Near(5, 5) || !c.Near(-5, 30) {
		t.Error("expected nearby points to be near")
	}
	if c.Near(1<<40, 0) || c.Near(0, -1000) {
		t.Error("expected far points to be rejected")
	}
}

func TestSliderBar(t *testing.T) {
	tests := []struct {
		v, min, max float64
		want        string
	}{
		{50, 50, 250, "[----------]"},
		{250, 50, 250, "[==========]"},
		{150, 50, 250, "[=====-----]"},
		{900, 50, 250, "[==========]"},
	}
	for _, tt := range tests {
		if got := SliderBar(tt.v, tt.min, tt.max, 10); got != tt.want {
			t.Errorf("SliderBar(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestCanvasDrawLineDiagonalAndClipped(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(7, 7, 0, 0)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Fatalf("diagonal missing pixel (%d,%d)", i, i)
		}
	}
	if c.IsSet(1, 0) || c.IsSet(0, 1) {
		t.Error("diagonal lit a neighbouring pixel")
	}

	c.Clear()
	c.DrawLine(-5, 3, 20, 3)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 3) {
			t.Fatalf("clipped line missing pixel %d", x)
		}
	}
	if got := c.String(); strings.Count(got, "\n") != 2 {
		t.Errorf("String rendered %d rows, want 2", strings.Count(got, "\n"))
	}
}
