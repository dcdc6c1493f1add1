package hal

// rgb888From332 expands an RGB332 palette index (rrrgggbb).
func rgb888From332(p uint8) (r, g, b uint8) {
	rr := (p >> 5) & 0x07
	gg := (p >> 2) & 0x07
	bb := p & 0x03

	r = uint8((uint16(rr) * 255) / 7)
	g = uint8((uint16(gg) * 255) / 7)
	b = uint8((uint16(bb) * 255) / 3)
	return r, g, b
}
