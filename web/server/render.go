package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var contentTypes = map[renderer.Format]string{
	renderer.FormatPNG:  "image/png",
	renderer.FormatPPM:  "image/x-portable-pixmap",
	renderer.FormatBMP:  "image/bmp",
	renderer.FormatTIFF: "image/tiff",
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int   `json:"totalPixels"`
	RenderedPixels int   `json:"renderedPixels"`
	TotalTiles     int   `json:"totalTiles"`
	CompletedTiles int   `json:"completedTiles"`
	Workers        int   `json:"workers"`
	DurationMs     int64 `json:"durationMs"`
}

func newStats(s renderer.RenderStats) *Stats {
	return &Stats{
		TotalPixels:    s.TotalPixels,
		RenderedPixels: s.RenderedPixels,
		TotalTiles:     s.TotalTiles,
		CompletedTiles: s.CompletedTiles,
		Workers:        s.Workers,
		DurationMs:     s.Duration.Milliseconds(),
	}
}

// StreamMessage is one websocket message of a streamed render
type StreamMessage struct {
	Type     string `json:"type"` // "start", "tile", "console", "complete", "error"
	RenderID string `json:"renderId"`

	// start
	Scene  string `json:"scene,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// tile
	TileX      int    `json:"tileX,omitempty"`
	TileY      int    `json:"tileY,omitempty"`
	X          int    `json:"x,omitempty"` // Pixel position of the tile
	Y          int    `json:"y,omitempty"`
	TileNumber int    `json:"tileNumber,omitempty"`
	TotalTiles int    `json:"totalTiles,omitempty"`
	ImageData  string `json:"imageData,omitempty"` // Base64 encoded PNG

	// console and error
	Console *ConsoleMessage `json:"console,omitempty"`
	Message string          `json:"message,omitempty"`

	// complete
	Stats     *Stats `json:"stats,omitempty"`
	ElapsedMs int64  `json:"elapsedMs,omitempty"`
}

// handleRender renders a whole image and returns it in the requested format
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, camera, err := s.prepare(req)
	if err != nil {
		writeError(w, prepareErrorStatus(err), err)
		return
	}

	renderID := uuid.New().String()
	logger := NewWebLogger(renderID, nil, s.logger)
	logger.Infof("rendering %s at %dx%d", sc.Name, camera.HSize, camera.VSize)

	opts := s.cfg.RenderOptions()
	opts.TileSize = req.TileSize
	opts.MaxDepth = req.MaxDepth
	opts.Logger = logger
	canvas, stats, err := camera.RenderContext(r.Context(), sc.World, opts)
	if err != nil {
		// The client went away
		return
	}

	var buf bytes.Buffer
	if err := canvas.Encode(&buf, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders over a websocket, sending each finished tile as
// it completes, console log lines, and a final message with the full image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, camera, err := s.prepare(req)
	if err != nil {
		writeError(w, prepareErrorStatus(err), err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
	})
	if err != nil {
		s.logger.Errorf("websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	// Reading is not expected; a client close cancels ctx
	ctx := conn.CloseRead(r.Context())

	renderID := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	messages := make(chan StreamMessage, 16)
	go s.streamRender(ctx, renderID, req, sc.Name, camera, sc.World, logger, messages)

	if err := wsjson.Write(ctx, conn, StreamMessage{
		Type:     "start",
		RenderID: renderID,
		Scene:    sc.Name,
		Width:    camera.HSize,
		Height:   camera.VSize,
	}); err != nil {
		return
	}

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				s.drainConsole(ctx, conn, renderID, consoleChan)
				conn.Close(websocket.StatusNormalClosure, "render finished")
				return
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				return
			}
		case c := <-consoleChan:
			if err := wsjson.Write(ctx, conn, consoleMessage(renderID, c)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// streamRender runs the render and feeds tile, complete and error messages
// into out, closing it when done
func (s *Server) streamRender(ctx context.Context, renderID string, req *RenderRequest, sceneName string,
	camera *renderer.Camera, world renderer.ColorSource, logger *WebLogger, out chan<- StreamMessage) {
	defer close(out)

	send := func(msg StreamMessage) {
		select {
		case out <- msg:
		case <-ctx.Done():
		}
	}

	start := time.Now()
	logger.Infof("rendering %s at %dx%d", sceneName, camera.HSize, camera.VSize)

	opts := s.cfg.RenderOptions()
	opts.TileSize = req.TileSize
	opts.MaxDepth = req.MaxDepth
	opts.Logger = logger
	opts.OnTile = func(t renderer.TileResult) {
		data, err := encodePNG(t.Image())
		if err != nil {
			logger.Errorf("encode tile: %v", err)
			return
		}
		send(StreamMessage{
			Type:       "tile",
			RenderID:   renderID,
			TileX:      t.TileX,
			TileY:      t.TileY,
			X:          t.Bounds.Min.X,
			Y:          t.Bounds.Min.Y,
			TileNumber: t.TileNumber,
			TotalTiles: t.TotalTiles,
			ImageData:  data,
		})
	}

	canvas, stats, err := camera.RenderContext(ctx, world, opts)
	if err != nil {
		send(StreamMessage{Type: "error", RenderID: renderID, Message: err.Error()})
		return
	}

	data, err := encodePNG(canvas.ToImage())
	if err != nil {
		send(StreamMessage{Type: "error", RenderID: renderID, Message: err.Error()})
		return
	}
	logger.Infof("render completed in %v", stats.Duration)
	send(StreamMessage{
		Type:      "complete",
		RenderID:  renderID,
		ImageData: data,
		Stats:     newStats(stats),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// drainConsole flushes console lines logged before the render finished
func (s *Server) drainConsole(ctx context.Context, conn *websocket.Conn, renderID string, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case c := <-consoleChan:
			if err := wsjson.Write(ctx, conn, consoleMessage(renderID, c)); err != nil {
				return
			}
		default:
			return
		}
	}
}

func consoleMessage(renderID string, c ConsoleMessage) StreamMessage {
	return StreamMessage{Type: "console", RenderID: renderID, Console: &c}
}

// encodePNG converts an image to base64 PNG
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
