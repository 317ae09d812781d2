package server

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"

	"github.com/cwbudde/inkshape/internal/canvas"
)

// renderBitmap rasterizes the 1bpp canvas as black ink on white.
func renderBitmap(bm *canvas.Bitmap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, bm.Width(), bm.Height()))
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if bm.Pixel(x, y) {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// handleGetCanvasImage handles GET /api/v1/sessions/:id/canvas.png
func (s *Server) handleGetCanvasImage(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, exists := s.sessions.GetSession(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	img := renderBitmap(session.svc.Snapshot())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")

	if err := png.Encode(w, img); err != nil {
		slog.Error("Failed to encode PNG", "error", err)
	}
}
