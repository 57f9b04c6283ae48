package server

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/integrator"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/renderer"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamMessage is a JSON text frame sent while a streamed render runs.
// The finished frame follows the "complete" message as a binary PNG frame.
type StreamMessage struct {
	Type          string  `json:"type"` // progress, complete or error
	TilesRendered int     `json:"tilesRendered,omitempty"`
	TotalTiles    int     `json:"totalTiles,omitempty"`
	TotalSamples  int     `json:"totalSamples,omitempty"`
	AverageSpp    float64 `json:"averageSpp,omitempty"`
	ElapsedMs     int64   `json:"elapsedMs,omitempty"`
	Partial       bool    `json:"partial,omitempty"`
	Message       string  `json:"message,omitempty"`
}

func progressMessage(kind string, stats renderer.RenderStats) StreamMessage {
	return StreamMessage{
		Type:          kind,
		TilesRendered: stats.TilesRendered,
		TotalTiles:    stats.TotalTiles,
		TotalSamples:  stats.TotalSamples,
		AverageSpp:    stats.AverageSamples,
		ElapsedMs:     stats.Duration.Milliseconds(),
	}
}

// handleRenderStream renders over a websocket, reporting every finished tile
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	integratorInst, err := integrator.New(req.Integrator, integrator.Config{MaxDepth: sceneObj.SamplingConfig.MaxDepth})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warningf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Closing the socket from the client side stops the render
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	rt := renderer.NewRaytracer(sceneObj, integratorInst)
	rt.OnTileComplete(func(progress renderer.RenderStats) {
		if err := conn.WriteJSON(progressMessage("progress", progress)); err != nil {
			cancel()
		}
	})

	img, stats, err := rt.Render(ctx)
	if err != nil && !errors.Is(err, renderer.ErrInterrupted) {
		_ = conn.WriteJSON(StreamMessage{Type: "error", Message: err.Error()})
		return
	}

	done := progressMessage("complete", stats)
	done.Partial = err != nil
	if err := conn.WriteJSON(done); err != nil {
		logger.Infof("stream client went away: %v", err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		_ = conn.WriteJSON(StreamMessage{Type: "error", Message: "failed to encode frame: " + err.Error()})
		return
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
		logger.Infof("stream client went away: %v", err)
		return
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}
