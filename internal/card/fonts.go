package card

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
)

type fontSet struct {
	sans *truetype.Font
	mono *truetype.Font
}

var loadFonts = sync.OnceValues(func() (fontSet, error) {
	sans, err := truetype.Parse(gomedium.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse sans font: %w", err)
	}
	mono, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse mono font: %w", err)
	}
	return fontSet{sans: sans, mono: mono}, nil
})

func face(f *truetype.Font, sizePx float64) font.Face {
	// 72 DPI makes points equal pixels.
	return truetype.NewFace(f, &truetype.Options{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
}
