package frame

// Max is the highest pixel intensity a buffer cell can hold. It matches
// the MAX7219 intensity range so effects can write graded values even
// though the panel itself is 1-bit per pixel.
const Max = 15

// On is the intensity most effects use for a lit pixel.
const On = Max

// Buffer is a fixed-size intensity bitmap. Dimensions are set at
// construction and never change. Writes outside the bounds are dropped.
type Buffer struct {
	w, h int
	pix  []uint8
}

func New(w, h int) *Buffer {
	if w <= 0 || h <= 0 {
		panic("frame: non-positive dimensions")
	}
	return &Buffer{w: w, h: h, pix: make([]uint8, w*h)}
}

func (b *Buffer) Width() int  { return b.w }
func (b *Buffer) Height() int { return b.h }

// Set writes intensity v at (x,y). Out-of-bounds coordinates are ignored
// so effects can draw partially visible shapes without pre-clipping.
func (b *Buffer) Set(x, y int, v uint8) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	if v > Max {
		v = Max
	}
	b.pix[y*b.w+x] = v
}

// Get returns the intensity at (x,y), or 0 for out-of-bounds reads.
func (b *Buffer) Get(x, y int) uint8 {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return 0
	}
	return b.pix[y*b.w+x]
}

// Lit reports whether the pixel at (x,y) is on at all.
func (b *Buffer) Lit(x, y int) bool { return b.Get(x, y) > 0 }

// Fill sets every pixel to v.
func (b *Buffer) Fill(v uint8) {
	if v > Max {
		v = Max
	}
	for i := range b.pix {
		b.pix[i] = v
	}
}

// Clear blanks the buffer.
func (b *Buffer) Clear() { b.Fill(0) }

// Any reports whether at least one pixel is lit.
func (b *Buffer) Any() bool {
	for _, v := range b.pix {
		if v > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the raw pixel values in row-major order.
// Used by the frame broadcaster; the engine keeps exclusive ownership of
// the live buffer.
func (b *Buffer) Snapshot() []uint8 {
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// PackRow packs one 8-pixel-wide slice of row y into a byte, MSB first,
// starting at column x0. Pixels with any intensity count as lit. This is
// the MAX7219 digit-register layout for a module whose leftmost column
// is x0.
func (b *Buffer) PackRow(x0, y int) byte {
	var out byte
	for i := 0; i < 8; i++ {
		if b.Lit(x0+i, y) {
			out |= 1 << (7 - i)
		}
	}
	return out
}
