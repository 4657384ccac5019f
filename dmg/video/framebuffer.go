package video

// Screen dimensions of the DMG LCD.
const (
	Width  = 160
	Height = 144
)

// shadeColor maps a Shade to an opaque RGBA word (0xAABBGGRR little-endian
// channel order isn't load-bearing here; callers only care about the four
// distinct values), used by the host renderer collaborator.
var shadeColor = [4]uint32{
	White:     0xFFFFFFFF,
	LightGray: 0xFFAAAAAA,
	DarkGray:  0xFF555555,
	Black:     0xFF000000,
}

// FrameBuffer holds one decoded frame as Width*Height shade-derived colors.
// The actual pixel renderer is a host collaborator; this is the minimal
// surface the GPU mode machine needs to produce a scanline into.
type FrameBuffer struct {
	pixels [Width * Height]uint32
	shades [Width * Height]Shade
}

// NewFrameBuffer returns a framebuffer initialized to white.
func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{}
	for i := range fb.pixels {
		fb.pixels[i] = shadeColor[White]
	}
	return fb
}

// SetPixel stores the shade at (x, y), along with its RGBA-derived color.
func (f *FrameBuffer) SetPixel(x, y int, s Shade) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	f.pixels[y*Width+x] = shadeColor[s]
	f.shades[y*Width+x] = s
}

// Pixels returns the backing slice of RGBA-derived colors, row-major.
func (f *FrameBuffer) Pixels() []uint32 {
	return f.pixels[:]
}

// Shades returns the backing slice of raw shade indices, row-major; the
// terminal renderer uses these directly instead of decoding colors back.
func (f *FrameBuffer) Shades() []Shade {
	return f.shades[:]
}
