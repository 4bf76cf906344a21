package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	// Page colors behind the cards.
	Foreground = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF} // #374151
	Background = color.RGBA{R: 0xF3, G: 0xF4, B: 0xF6, A: 0xFF} // #f3f4f6

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)
