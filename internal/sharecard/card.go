// Package sharecard renders a daily record as a downloadable PNG card.
package sharecard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

// Card dimensions, portrait like the in-app share sheet.
const (
	cardWidth  = 600
	cardHeight = 800
	margin     = 40
)

var (
	// ErrNoThumbnail means the record carries no embedded image to render.
	ErrNoThumbnail = errors.New("sharecard: record has no thumbnail")

	cardBackground = color.RGBA{R: 0xF6, G: 0xF4, B: 0xEF, A: 0xFF}
	barTrack       = color.RGBA{R: 0xE2, G: 0xDE, B: 0xD6, A: 0xFF}
	energyFill     = color.RGBA{R: 0x8A, G: 0xA8, B: 0x8B, A: 0xFF}
	moodFill       = color.RGBA{R: 0xA8, G: 0x9B, B: 0xC4, A: 0xFF}
)

// Filename is the suggested download name for a record's card,
// e.g. "facelab-2026-08-30.png".
func Filename(rec *types.Record) string {
	return fmt.Sprintf("facelab-%s.png", rec.Date.Format("2006-01-02"))
}

// PNG renders the record as a share card image. The layout is deliberately
// simple: the selfie on top, score bars underneath.
func PNG(rec *types.Record) ([]byte, error) {
	thumb, err := decodeThumbnail(rec.Thumbnail)
	if err != nil {
		return nil, err
	}

	card := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(card, card.Bounds(), image.NewUniform(cardBackground), image.Point{}, draw.Src)

	drawThumbnail(card, thumb)

	barTop := cardHeight - 220
	drawScoreBar(card, barTop, rec.Emotion.EnergyLevel, energyFill)
	drawScoreBar(card, barTop+70, rec.Emotion.MoodBrightness, moodFill)

	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeThumbnail parses the record's data URL into an image. JPEG and PNG
// payloads are accepted; anything else falls through to the generic decoder.
func decodeThumbnail(dataURL string) (image.Image, error) {
	if dataURL == "" {
		return nil, ErrNoThumbnail
	}
	payload := dataURL
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		// try a strict jpeg decode for payloads with odd metadata
		if jimg, jerr := jpeg.Decode(bytes.NewReader(raw)); jerr == nil {
			return jimg, nil
		}
		return nil, fmt.Errorf("decode thumbnail image: %w", err)
	}
	return img, nil
}

// drawThumbnail scales the selfie into the top portion of the card with a
// nearest-neighbor fit, preserving aspect ratio.
func drawThumbnail(card *image.RGBA, thumb image.Image) {
	areaW := cardWidth - 2*margin
	areaH := cardHeight - 300 - 2*margin

	tb := thumb.Bounds()
	if tb.Dx() == 0 || tb.Dy() == 0 {
		return
	}
	scaleX := float64(areaW) / float64(tb.Dx())
	scaleY := float64(areaH) / float64(tb.Dy())
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	dstW := int(float64(tb.Dx()) * scale)
	dstH := int(float64(tb.Dy()) * scale)
	offX := margin + (areaW-dstW)/2
	offY := margin + (areaH-dstH)/2

	for y := 0; y < dstH; y++ {
		srcY := tb.Min.Y + int(float64(y)/scale)
		for x := 0; x < dstW; x++ {
			srcX := tb.Min.X + int(float64(x)/scale)
			card.Set(offX+x, offY+y, thumb.At(srcX, srcY))
		}
	}
}

// drawScoreBar paints a horizontal 0-10 score bar at the given top offset.
func drawScoreBar(card *image.RGBA, top int, score float64, fill color.RGBA) {
	score = types.ClampScore(score)
	const barHeight = 28
	barWidth := cardWidth - 2*margin
	track := image.Rect(margin, top, margin+barWidth, top+barHeight)
	draw.Draw(card, track, image.NewUniform(barTrack), image.Point{}, draw.Src)

	fillWidth := int(float64(barWidth) * score / 10.0)
	if fillWidth > 0 {
		filled := image.Rect(margin, top, margin+fillWidth, top+barHeight)
		draw.Draw(card, filled, image.NewUniform(fill), image.Point{}, draw.Src)
	}
}
