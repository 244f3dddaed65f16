package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Layout constants for the synthesized Instagram frame. Values mirror the
// portrait post format: header strip, square image area, interaction strip.
const (
	headerHeight    = 180
	avatarSize      = 96
	avatarMargin    = 36
	captionWrapCols = 45
	captionMaxLines = 4
	jpegQuality     = 90

	profileName    = "SuperPossible"
	sponsoredLabel = "Sponsored"
	likesLine      = "4,455 likes"
	timestampLine  = "Just now"
)

var (
	white          = color.RGBA{255, 255, 255, 255}
	black          = color.RGBA{0, 0, 0, 255}
	instagramPlum  = color.RGBA{138, 58, 185, 255}
	midGray        = color.RGBA{120, 120, 120, 255}
	lightGray      = color.RGBA{230, 230, 230, 255}
	timestampColor = color.RGBA{150, 150, 150, 255}
)

// drawMockup synthesizes the mockup composition directly into pixels. It is
// deterministic and performs no I/O, so it cannot fail for a given input
// except on encoding.
func drawMockup(comp Composition, viewport Viewport) ([]byte, error) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", viewport.Width, viewport.Height)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, viewport.Width, viewport.Height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	// Header: avatar circle with a camera glyph, profile name, sponsored tag.
	avatarY := (headerHeight - avatarSize) / 2
	fillCircle(canvas, avatarMargin+avatarSize/2, avatarY+avatarSize/2, avatarSize/2, instagramPlum)
	drawCameraGlyph(canvas, avatarMargin, avatarY)

	textX := avatarMargin + avatarSize + 24
	drawText(canvas, textX, avatarY+34, profileName, black)
	drawText(canvas, textX, avatarY+62, sponsoredLabel, midGray)

	// Menu dots at the right edge of the header.
	for i := 0; i < 3; i++ {
		fillCircle(canvas, viewport.Width-48, avatarY+24+i*14, 3, midGray)
	}

	// Image area: a neutral placeholder block with the product framed by name
	// and category. The local tier never fetches the product image.
	imageAreaHeight := viewport.Width
	if headerHeight+imageAreaHeight > viewport.Height {
		imageAreaHeight = viewport.Height - headerHeight
	}
	imageArea := image.Rect(0, headerHeight, viewport.Width, headerHeight+imageAreaHeight)
	draw.Draw(canvas, imageArea, &image.Uniform{lightGray}, image.Point{}, draw.Src)

	centerY := headerHeight + imageAreaHeight/2
	if comp.ProductName != "" {
		drawTextCentered(canvas, viewport.Width/2, centerY-10, comp.ProductName, black)
	}
	if comp.ProductCategory != "" {
		drawTextCentered(canvas, viewport.Width/2, centerY+24, comp.ProductCategory, midGray)
	}

	// Interaction strip: heart, comment, share on the left, bookmark right.
	iconY := headerHeight + imageAreaHeight + 36
	if iconY+24 < viewport.Height {
		strokeCircle(canvas, 36+12, iconY, 12, black)  // heart
		strokeCircle(canvas, 106+12, iconY, 12, black) // comment bubble
		strokeRect(canvas, image.Rect(176, iconY-12, 200, iconY+12), black)          // share
		strokeRect(canvas, image.Rect(viewport.Width-66, iconY-12, viewport.Width-42, iconY+12), black) // bookmark
	}

	// Likes, caption, timestamp.
	textY := iconY + 48
	if textY < viewport.Height {
		drawText(canvas, 36, textY, likesLine, black)
		textY += 36
	}

	if caption := strings.TrimSpace(comp.Caption); caption != "" {
		lines := wrapCaption(profileName+" "+caption, captionWrapCols, captionMaxLines)
		for _, line := range lines {
			if textY >= viewport.Height-20 {
				break
			}
			drawText(canvas, 36, textY, line, black)
			textY += 26
		}
		textY += 10
	}

	if textY < viewport.Height-10 {
		drawText(canvas, 36, textY, timestampLine, timestampColor)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode mockup: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapCaption wraps text at the given column count and caps the line count,
// replacing the tail of the last line with an ellipsis on overflow.
func wrapCaption(text string, cols, maxLines int) []string {
	words := strings.Fields(text)
	var lines []string
	var current string

	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if len(candidate) > cols && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last) > 3 {
			last = last[:len(last)-3]
		}
		lines[maxLines-1] = last + "..."
	}
	return lines
}

func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func drawTextCentered(img *image.RGBA, cx, y int, text string, col color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	drawText(img, cx-width/2, y, text, col)
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.Set(cx+x, cy+y, col)
			}
		}
	}
}

func strokeCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	inner := (r - 2) * (r - 2)
	outer := r * r
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d := x*x + y*y
			if d <= outer && d >= inner {
				img.Set(cx+x, cy+y, col)
			}
		}
	}
}

func strokeRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, col)
		img.Set(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, col)
		img.Set(rect.Max.X-1, y, col)
	}
}

// drawCameraGlyph draws the simplified white camera inside the avatar circle.
func drawCameraGlyph(img *image.RGBA, avatarX, avatarY int) {
	bodyX := avatarX + avatarSize/2 - 24
	bodyY := avatarY + avatarSize/2 - 18
	body := image.Rect(bodyX, bodyY, bodyX+48, bodyY+36)
	draw.Draw(img, body, &image.Uniform{white}, image.Point{}, draw.Src)
	fillCircle(img, bodyX+24, bodyY+18, 10, instagramPlum)
	flash := image.Rect(bodyX+38, bodyY+4, bodyX+44, bodyY+10)
	draw.Draw(img, flash, &image.Uniform{white}, image.Point{}, draw.Src)
}
