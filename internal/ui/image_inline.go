package ui

import (
	"bytes"
	goimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"github.com/BourgeoisBear/rasterm"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageCapability represents the terminal's inline image support
type ImageCapability int

const (
	CapNone  ImageCapability = iota // no image support, placeholder only
	CapKitty                        // Kitty graphics protocol
	CapITerm                        // iTerm2 inline images
)

// String returns the capability name
func (c ImageCapability) String() string {
	switch c {
	case CapKitty:
		return "kitty"
	case CapITerm:
		return "iterm"
	}
	return "none"
}

// DetectImageCapability detects inline image support from the environment.
// Detection order: Kitty -> iTerm -> None.
func DetectImageCapability() ImageCapability {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return CapKitty
	}
	if strings.Contains(os.Getenv("TERM"), "kitty") {
		return CapKitty
	}

	termProgram := os.Getenv("TERM_PROGRAM")
	switch termProgram {
	case "iTerm.app", "WezTerm":
		// WezTerm speaks the iTerm protocol
		return CapITerm
	case "ghostty":
		return CapKitty
	}
	if os.Getenv("LC_TERMINAL") == "iTerm2" {
		return CapITerm
	}

	return CapNone
}

// maxInlineImageWidth is the pixel width images are downscaled to before
// transmission; terminals scale down anyway and smaller payloads transmit
// faster.
const maxInlineImageWidth = 800

// rendered image cache, keyed by image identifier
var (
	renderedImages   = make(map[string]string)
	renderedImagesMu sync.Mutex
)

// RenderInlineImage encodes image data as terminal escape sequences for
// inline display, cached by key. Returns empty string when the terminal has
// no image support or the data does not decode; callers print a placeholder.
func RenderInlineImage(key string, data []byte) string {
	renderedImagesMu.Lock()
	if cached, ok := renderedImages[key]; ok {
		renderedImagesMu.Unlock()
		return cached
	}
	renderedImagesMu.Unlock()

	result := renderImageData(data, DetectImageCapability())

	renderedImagesMu.Lock()
	renderedImages[key] = result
	renderedImagesMu.Unlock()
	return result
}

func renderImageData(data []byte, cap ImageCapability) string {
	if cap == CapNone {
		return ""
	}

	img, _, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	img = scaleIfNeeded(img, maxInlineImageWidth)

	var buf bytes.Buffer
	switch cap {
	case CapKitty:
		if err := rasterm.KittyWriteImage(&buf, img, rasterm.KittyImgOpts{}); err != nil {
			return ""
		}
	case CapITerm:
		if err := rasterm.ItermWriteImage(&buf, img); err != nil {
			return ""
		}
	}
	return buf.String()
}

// scaleIfNeeded downscales img to maxWidth, keeping aspect ratio.
func scaleIfNeeded(img goimage.Image, maxWidth int) goimage.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	if width <= maxWidth {
		return img
	}

	newHeight := (bounds.Dy() * maxWidth) / width
	dst := goimage.NewRGBA(goimage.Rect(0, 0, maxWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// ClearRenderedImages clears the rendered image cache.
func ClearRenderedImages() {
	renderedImagesMu.Lock()
	renderedImages = make(map[string]string)
	renderedImagesMu.Unlock()
}
