package server

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// StreamHandler serves the camera feed as MJPEG. Frames are pushed in by
// the control loop; the handler only replays the latest frame, so stream
// viewers never compete with the control path for the camera.
type StreamHandler struct {
	mu      sync.RWMutex
	frame   []byte
	seq     uint64
	viewers atomic.Int64
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler() *StreamHandler {
	return &StreamHandler{}
}

// UpdateFrame stores an already JPEG-encoded frame for streaming.
func (h *StreamHandler) UpdateFrame(jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frame = jpeg
	h.seq++
}

// HasViewers reports whether any stream clients are connected. The control
// loop uses this to skip JPEG encoding when nobody is watching.
func (h *StreamHandler) HasViewers() bool {
	return h.viewers.Load() > 0
}

// latest returns the newest frame and its sequence number.
func (h *StreamHandler) latest() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame, h.seq
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.viewers.Add(1)
	defer h.viewers.Add(-1)

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var lastSeq uint64
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		frame, seq := h.latest()
		if frame == nil || seq == lastSeq {
			continue
		}
		lastSeq = seq

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(frame))
		if _, err := w.Write(frame); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
