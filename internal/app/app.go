// Package app wires the capture, detection, control and injection stages
// into the running Mudra application.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while tracking a hand.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to idle.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	CameraDevice string // v4l2 device path; takes precedence over CameraID
	MotionThresh float64
	Control      control.Config
	Screen       pointer.ScreenGeometry
	Injector     pointer.Injector
	Detector     detector.Detector
	Live         *server.LiveHandler
	Stream       *server.StreamHandler
}

// App orchestrates the frame pipeline that turns hand landmarks into
// pointer movement and clicks.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	controller *control.Controller
	injector   pointer.Injector

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	done    chan struct{}

	sessionID  string
	frames     int64
	clicks     int64
	lastX      int
	lastY      int
	tracked    bool
	onTracking func(bool)
}

// New creates a new App instance with the given configuration.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	controller, err := control.NewController(config.Control, config.Screen.Width, config.Screen.Height)
	if err != nil {
		return nil, err
	}

	var camera capture.Camera
	if config.CameraDevice != "" {
		camera = capture.NewV4L2Camera(config.CameraDevice)
	} else {
		camera = capture.NewCamera(config.CameraID)
	}

	a := &App{
		config:     config,
		camera:     camera,
		motion:     capture.NewMotionDetector(motionThreshold),
		detector:   config.Detector,
		controller: controller,
		injector:   config.Injector,
		lastX:      config.Screen.Width / 2,
		lastY:      config.Screen.Height / 2,
	}

	// Try MediaPipe if no detector was injected, fall back to mock
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	return a, nil
}

// SetEnabled enables or disables pointer control. Disabling releases a
// held button so the desktop is never left with a stuck press.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled && !enabled {
		a.releaseButton()
	}
	a.enabled = enabled
}

// IsEnabled returns whether pointer control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnTracking sets a callback invoked whenever hand tracking is acquired
// or lost. The callback runs on its own goroutine.
func (a *App) OnTracking(fn func(tracked bool)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onTracking = fn
}

// SetCamera replaces the camera. Only valid before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start opens the camera and begins the control pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	if a.config.Store != nil {
		sess, err := a.config.Store.Sessions().Start()
		if err != nil {
			log.Printf("Failed to start session: %v", err)
		} else {
			a.sessionID = sess.ID
		}
	}
	a.frames = 0
	a.clicks = 0

	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Control pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources. A button still held by
// the pinch machine is released before anything is torn down.
func (a *App) Stop() {
	// Signal the pipeline and wait for it outside the lock; step() needs
	// the lock to finish its current frame.
	a.mu.Lock()
	stopCh, done := a.stopCh, a.done
	a.stopCh = nil
	a.done = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-done
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseButton()

	if a.config.Store != nil && a.sessionID != "" {
		if err := a.config.Store.Sessions().End(a.sessionID, a.frames, a.clicks); err != nil {
			log.Printf("Failed to end session: %v", err)
		}
		a.sessionID = ""
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Control pipeline stopped")
}

// releaseButton dispatches the fail-safe release if a button is held.
// Callers must hold a.mu.
func (a *App) releaseButton() {
	intent, fired := a.controller.Release()
	if !fired || a.injector == nil {
		return
	}
	if err := pointer.Dispatch(a.injector, intent); err != nil {
		log.Printf("Failed to release button: %v", err)
	}
	a.recordEvent(intent)
}

// recordEvent stores a button transition in the session history.
func (a *App) recordEvent(intent control.PointerIntent) {
	if intent.Type == control.IntentButtonDown {
		a.clicks++
	}
	if a.config.Store == nil || a.sessionID == "" {
		return
	}
	if err := a.config.Store.Sessions().RecordEvent(a.sessionID, string(intent.Type), a.lastX, a.lastY); err != nil {
		log.Printf("Failed to record pointer event: %v", err)
	}
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// Controller returns the control pipeline.
func (a *App) Controller() *control.Controller {
	return a.controller
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// LastPosition returns the last cursor position the pipeline dispatched.
func (a *App) LastPosition() (int, int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastX, a.lastY
}

// idleTimeout returns the idle fallback duration.
func idleTimeout() time.Duration {
	return time.Duration(IdleTimeoutMs) * time.Millisecond
}
