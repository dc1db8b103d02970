package ui

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce   sync.Once
	labelFace   font.Face = basicfont.Face7x13
	headingFace font.Face = basicfont.Face7x13
	hintFace    font.Face = basicfont.Face7x13
)

// loadFaces parses the Go fonts. On failure the basic bitmap face stays in use.
func loadFaces() {
	fontsOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		if f, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull}); err == nil {
			labelFace = f
		}
		if f, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: 15, DPI: 72, Hinting: font.HintingFull}); err == nil {
			headingFace = f
		}
		if f, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull}); err == nil {
			hintFace = f
		}
	})
}
