package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	fontDpi  = 72.0        // font DPI setting
	fontFile = "cards.ttf" // TTF font filename in the resources folder
	fontSize = 28.0        // font size in points
	fontTtf  *truetype.Font
)

// Load the scorecard font from disk. The font is optional; without it the
// leaderboard falls back to text output.
func loadFont() {

	fontBytes, err := os.ReadFile(RESOURCES_FOLDER + fontFile)
	if err != nil {
		log.Println("NOTICE, No scorecard font installed, using text output:", err)
		return
	}

	fontTtf, err = truetype.Parse(fontBytes)
	if err != nil {
		log.Println("ERROR, Parsing scorecard font:", err)
		fontTtf = nil
	}
}

// GenerateScorecard draws a ranked score list onto a PNG buffer. Returns nil
// when no font is installed or rendering fails, so callers can fall back.
func GenerateScorecard(title string, rows []Player) *bytes.Buffer {

	if fontTtf == nil || len(rows) == 0 {
		return nil
	}

	d := &font.Drawer{
		Src: image.Black,
		Face: truetype.NewFace(fontTtf, &truetype.Options{
			Size:    fontSize,
			DPI:     fontDpi,
			Hinting: font.HintingFull,
		}),
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, title)
	for i, p := range rows {
		lines = append(lines, fmt.Sprintf("%d. %s - %d points", i+1, p.Name, p.Score))
	}

	// Figure out image bounds
	var widest int
	for _, line := range lines {
		if w := d.MeasureString(line).Round(); w > widest {
			widest = w
		}
	}

	lineHeight := int(math.Ceil(fontSize * fontDpi / 72 * 1.3))
	imgW := widest + widest/5 // 20% extra for margins
	imgH := (len(lines) + 1) * lineHeight

	// Create image canvas with white background
	rgba := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)
	d.Dst = rgba

	y := lineHeight
	x := fixed.I(widest / 10)
	for _, line := range lines {
		d.Dot = fixed.Point26_6{X: x, Y: fixed.I(y)}
		d.DrawString(line)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		log.Println("ERROR, Encoding scorecard PNG:", err)
		return nil
	}

	return &buf
}
