package artwork

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"

	// Pixels below this alpha are drawn as terminal background.
	alphaCutoff = 0x80
)

// halfBlocks samples img into width x height cells, two pixel rows per cell.
func halfBlocks(img image.Image, width, height int) []string {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	pixelRows := height * 2

	sample := func(cx, py int) (color.NRGBA, bool) {
		sx := b.Min.X + cx*srcW/width
		sy := b.Min.Y + py*srcH/pixelRows
		c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
		return c, c.A >= alphaCutoff
	}

	lines := make([]string, height)
	var sb strings.Builder
	for row := 0; row < height; row++ {
		sb.Reset()
		for col := 0; col < width; col++ {
			top, topOK := sample(col, row*2)
			bottom, bottomOK := sample(col, row*2+1)
			switch {
			case topOK && bottomOK:
				sb.WriteString(lipgloss.NewStyle().
					Foreground(hex(top)).
					Background(hex(bottom)).
					Render(upperHalf))
			case topOK:
				sb.WriteString(lipgloss.NewStyle().Foreground(hex(top)).Render(upperHalf))
			case bottomOK:
				sb.WriteString(lipgloss.NewStyle().Foreground(hex(bottom)).Render(lowerHalf))
			default:
				sb.WriteByte(' ')
			}
		}
		lines[row] = sb.String()
	}
	return lines
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// Fallback returns the fixed tile shown when an image cannot be loaded.
func Fallback(width, height int) Art {
	if width <= 0 || height <= 0 {
		return Art{Fallback: true}
	}
	glyph := "?"
	if width >= 12 && height >= 3 {
		glyph = "( ? )\nno picture"
	}
	tile := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6C7086")).
		Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, glyph))

	lines := strings.Split(tile, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return Art{Lines: lines, Fallback: true}
}
