package portrait

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder for portraits
	"image/png"
	"strings"

	"github.com/nfnt/resize"
)

// Kitty graphics protocol escape sequences
const (
	escStart  = "\x1b_G"
	escEnd    = "\x1b\\"
	chunkSize = 4096
)

// Typical terminal cell size in pixels.
const (
	cellPixelWidth  = 8
	cellPixelHeight = 16
)

// Thumbnail decodes an image, shrinks it to fit cols x rows cells and
// re-encodes it as PNG.
func Thumbnail(data []byte, cols, rows int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	pw := uint(max(cols*cellPixelWidth, cellPixelWidth))   //nolint:gosec // small cell counts
	ph := uint(max(rows*cellPixelHeight, cellPixelHeight)) //nolint:gosec // small cell counts
	small := resize.Thumbnail(pw, ph, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Transmit returns the escape sequence that uploads PNG data under id
// without displaying it.
func Transmit(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// Place displays a transmitted image at the 1-based (row, col) cell.
// The fixed placement id makes a new placement replace the previous one.
func Place(id uint32, row, col, cols, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, cols, rows, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// Delete frees a transmitted image and its placements.
func Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}

// Hide removes every visible placement but keeps image data.
func Hide() string {
	return escStart + "a=d,d=a,q=2;" + escEnd
}

// Placeholder returns a boxed frame used when no portrait is available.
func Placeholder(cols, rows int) string {
	if cols < 4 || rows < 2 {
		return ""
	}

	lines := make([]string, 0, rows)
	lines = append(lines, "┌"+strings.Repeat("─", cols-2)+"┐")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 {
			pad := (cols - 3) / 2
			lines = append(lines, "│"+strings.Repeat(" ", pad)+"?"+strings.Repeat(" ", cols-3-pad)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", cols-2)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", cols-2)+"┘")
	return strings.Join(lines, "\n")
}

// Blank returns a cols x rows block of spaces reserving layout room for an
// image drawn out of band.
func Blank(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
