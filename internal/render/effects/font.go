package effects

import "github.com/SeanoNET/PicoPixels/internal/frame"

// glyphAdvance is the horizontal step per character: 3 pixel columns plus
// one column of spacing.
const glyphAdvance = 4

// glyphs is the 3x5 font used by the text scroller and the clock face.
// Each entry is five rows, 3 bits wide, MSB leftmost.
var glyphs = map[byte][5]byte{
	'A': {0b111, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b111, 0b100, 0b100, 0b100, 0b111},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b111, 0b100, 0b111},
	'F': {0b111, 0b100, 0b111, 0b100, 0b100},
	'G': {0b111, 0b100, 0b101, 0b101, 0b111},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b111, 0b001, 0b001, 0b101, 0b111},
	'K': {0b101, 0b110, 0b100, 0b110, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b111, 0b101},
	'O': {0b111, 0b101, 0b101, 0b101, 0b111},
	'P': {0b111, 0b101, 0b111, 0b100, 0b100},
	'Q': {0b111, 0b101, 0b101, 0b111, 0b001},
	'R': {0b111, 0b101, 0b111, 0b110, 0b101},
	'S': {0b111, 0b100, 0b111, 0b001, 0b111},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b010, 0b010, 0b010, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// drawGlyph renders one character at (x,y) top-left. Characters without a
// glyph draw nothing.
func drawGlyph(f *frame.Buffer, x, y int, ch byte) {
	pattern, ok := glyphs[ch]
	if !ok {
		return
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 3; col++ {
			if pattern[row]&(1<<(2-col)) != 0 {
				f.Set(x+col, y+row, frame.On)
			}
		}
	}
}

// drawText renders s starting at (x,y), advancing glyphAdvance per
// character. The buffer clips anything off-panel.
func drawText(f *frame.Buffer, x, y int, s string) {
	for i := 0; i < len(s); i++ {
		drawGlyph(f, x+i*glyphAdvance, y, s[i])
	}
}

// textWidth is the rendered pixel width of s.
func textWidth(s string) int { return len(s) * glyphAdvance }
