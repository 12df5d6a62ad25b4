package tctim

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	// LowerHalfBlock is the glyph printed in every cell
	LowerHalfBlock = "▄"
	// ColorReset restores the default terminal colors
	ColorReset = "\x1b[0m"
)

// Encode renders a canonical image as true-color half blocks.
//
// Each terminal line covers two image rows: the top pixel sets the
// background color and the bottom pixel the foreground color of a lower half
// block. Lines are separated by a color reset and a newline, and a final
// reset follows the last line. The image is validated before any output is
// produced.
func Encode(a *Array) (string, error) {
	if err := checkCanonical(a); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(encodedSize(a))
	writeGlyphs(&sb, a)
	return sb.String(), nil
}

// EncodeTo streams the output of Encode to w
func EncodeTo(w io.Writer, a *Array) error {
	if err := checkCanonical(a); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	writeGlyphs(bw, a)
	return bw.Flush()
}

func checkCanonical(a *Array) error {
	if err := a.validate(); err != nil {
		return err
	}
	return a.isCanonical()
}

type glyphWriter interface {
	io.Writer
	io.StringWriter
}

func writeGlyphs(w glyphWriter, a *Array) {
	rows, cols := a.Shape[0], a.Shape[1]
	rowLen := 3 * cols
	// longest cell: two 19 byte color sequences and a 3 byte glyph
	buf := make([]byte, 0, 41)

	for y := 0; y < rows; y += 2 {
		if y > 0 {
			w.WriteString(ColorReset + "\n")
		}
		top := a.Pix[y*rowLen : (y+1)*rowLen]
		bot := a.Pix[(y+1)*rowLen : (y+2)*rowLen]
		for x := 0; x < rowLen; x += 3 {
			buf = appendColor(buf[:0], "\x1b[48;2;", top[x:x+3])
			buf = appendColor(buf, "\x1b[38;2;", bot[x:x+3])
			buf = append(buf, LowerHalfBlock...)
			w.Write(buf)
		}
	}
	w.WriteString(ColorReset)
}

func appendColor(buf []byte, prefix string, rgb []uint8) []byte {
	buf = append(buf, prefix...)
	buf = strconv.AppendUint(buf, uint64(rgb[0]), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(rgb[1]), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(rgb[2]), 10)
	return append(buf, 'm')
}

// encodedSize estimates the output length to avoid regrowing the builder
func encodedSize(a *Array) int {
	cells := a.Shape[0] / 2 * a.Shape[1]
	lines := a.Shape[0] / 2
	return cells*41 + lines*(len(ColorReset)+1) + len(ColorReset)
}
