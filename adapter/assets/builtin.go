package assets

import "math"

// Ids of the bitmaps every adapter ships with.
const (
	ArrowUp uint16 = iota
	ArrowDown
	ArrowLeft
	ArrowRight
	SmileyHappy
	SmileySad
)

const builtinSize = 32

const (
	builtinPaper = 0xFF
	builtinInk   = 0x00
	builtinFace  = 0xFC
)

func addBuiltins(a *Atlas) error {
	arrows := []struct {
		id uint16
		// maps a pixel to the frame of the right-pointing arrow
		rot func(x, y int) (int, int)
	}{
		{ArrowUp, func(x, y int) (int, int) { return builtinSize - 1 - y, x }},
		{ArrowDown, func(x, y int) (int, int) { return y, x }},
		{ArrowLeft, func(x, y int) (int, int) { return builtinSize - 1 - x, y }},
		{ArrowRight, func(x, y int) (int, int) { return x, y }},
	}
	for _, ar := range arrows {
		rot := ar.rot
		if err := a.Add(ar.id, builtinSize, builtinSize, paint(func(x, y int) byte {
			if arrowRight(rot(x, y)) {
				return builtinInk
			}
			return builtinPaper
		})); err != nil {
			return err
		}
	}
	if err := a.Add(SmileyHappy, builtinSize, builtinSize, paint(func(x, y int) byte { return smiley(x, y, true) })); err != nil {
		return err
	}
	return a.Add(SmileySad, builtinSize, builtinSize, paint(func(x, y int) byte { return smiley(x, y, false) }))
}

func paint(f func(x, y int) byte) []byte {
	pix := make([]byte, builtinSize*builtinSize)
	for y := 0; y < builtinSize; y++ {
		for x := 0; x < builtinSize; x++ {
			pix[y*builtinSize+x] = f(x, y)
		}
	}
	return pix
}

func arrowRight(x, y int) bool {
	fx := float64(x) + 0.5
	fy := math.Abs(float64(y) + 0.5 - builtinSize/2)
	if fx >= 3 && fx < 17 && fy < 4 {
		return true
	}
	return fx >= 16 && fx < 30 && fy < 30-fx
}

func smiley(x, y int, happy bool) byte {
	dist := func(cx, cy float64) float64 {
		return math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
	}
	d := dist(16, 16)
	switch {
	case d > 15:
		return builtinPaper
	case d > 13.5:
		return builtinInk
	case dist(11, 12) < 2.5 || dist(21, 12) < 2.5:
		return builtinInk
	}
	if happy {
		if m := dist(16, 16); y >= 19 && m > 7.5 && m < 9 {
			return builtinInk
		}
	} else {
		if m := dist(16, 30); y <= 24 && y >= 20 && m > 7.5 && m < 9 {
			return builtinInk
		}
	}
	return builtinFace
}
