package server

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxPlaceholderSide = 2000

// palette holds the Tailwind shades the category gradients use.
var palette = map[string]string{
	"purple-500": "#a855f7", "purple-600": "#9333ea",
	"pink-500": "#ec4899",
	"blue-500": "#3b82f6", "blue-600": "#2563eb",
	"cyan-200": "#a5f3fc", "cyan-500": "#06b6d4",
	"yellow-500": "#eab308",
	"orange-500": "#f97316",
	"green-500": "#22c55e", "green-600": "#16a34a",
	"teal-500": "#14b8a6",
	"indigo-500": "#6366f1",
	"red-500": "#ef4444",
	"gray-500": "#6b7280", "gray-600": "#4b5563", "gray-700": "#374151", "gray-800": "#1f2937",
}

const (
	defaultFrom = "#a855f7"
	defaultTo   = "#3b82f6"
)

// ParseGradient turns "from-purple-500-to-pink-500" into hex colors. Unknown
// shades fall back to the default purple-to-blue pair.
func ParseGradient(g string) (from, to string) {
	from, to = defaultFrom, defaultTo
	rest, ok := strings.CutPrefix(g, "from-")
	if !ok {
		return
	}
	a, b, ok := strings.Cut(rest, "-to-")
	if !ok {
		return
	}
	if hex, ok := palette[a]; ok {
		from = hex
	}
	if hex, ok := palette[b]; ok {
		to = hex
	}
	return
}

// PlaceholderSVG renders a gradient card with a centred label.
func PlaceholderSVG(width, height int, gradient, text string) string {
	from, to := ParseGradient(gradient)
	fontSize := max(12, min(width, height)/10)
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
		`</linearGradient></defs>`+
		`<rect width="100%%" height="100%%" fill="url(#g)"/>`+
		`<text x="50%%" y="50%%" fill="#ffffff" font-family="sans-serif" font-size="%d" font-weight="bold" text-anchor="middle" dominant-baseline="middle">%s</text>`+
		`</svg>`,
		width, height, width, height, from, to, fontSize, html.EscapeString(text))
}

// placeholder handles GET /api/placeholder/:width/:height?gradient=&text=
func (s *Server) placeholder(c *gin.Context) {
	width, errW := strconv.Atoi(c.Param("width"))
	height, errH := strconv.Atoi(c.Param("height"))
	if errW != nil || errH != nil || width <= 0 || height <= 0 || width > maxPlaceholderSide || height > maxPlaceholderSide {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_size",
			Message: fmt.Sprintf("width and height must be between 1 and %d", maxPlaceholderSide),
		})
		return
	}

	svg := PlaceholderSVG(width, height, c.Query("gradient"), c.Query("text"))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
