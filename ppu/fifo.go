package ppu

// paletteID identifies which palette register resolves a pixel's
// color index.
type paletteID uint8

const (
	paletteBG paletteID = iota
	paletteOBP0
	paletteOBP1
)

// pixel is one queued FIFO entry, per spec.md §3.
type pixel struct {
	color      uint8 // 0-3
	palette    paletteID
	bgPriority bool // sprite's BG-priority flag (sprite pixels only)
	spriteX    uint8
	spriteIdx  uint8
}

// fifo is a small ring buffer of pixels; 16 slots is more than either
// fetcher ever queues at once (8 pixels per fetch).
type fifo struct {
	buf   [16]pixel
	head  int
	count int
}

func (f *fifo) push8(p [8]pixel) {
	for _, px := range p {
		f.buf[(f.head+f.count)%len(f.buf)] = px
		f.count++
	}
}

func (f *fifo) pop() pixel {
	p := f.buf[f.head]
	f.head = (f.head + 1) % len(f.buf)
	f.count--
	return p
}

func (f *fifo) len() int { return f.count }

func (f *fifo) clear() {
	f.head, f.count = 0, 0
}

// at returns the pixel at queue position i (0 = next to pop) without
// removing it; set replaces it in place. The sprite fetcher does not
// use them: it merges into its own pending window (fetcher.go).
func (f *fifo) at(i int) pixel {
	return f.buf[(f.head+i)%len(f.buf)]
}

func (f *fifo) set(i int, p pixel) {
	f.buf[(f.head+i)%len(f.buf)] = p
}
