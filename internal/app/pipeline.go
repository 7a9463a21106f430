package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/server"
)

// runPipeline is the main control loop. Each tick it reads a frame, runs
// motion gating, detects hand landmarks, feeds the controller and injects
// the resulting intents.
//
// Pipeline logic:
//  1. Start in idle mode (IdleFPS)
//  2. On motion detected, switch to active mode (ActiveFPS)
//  3. Run hand detection; a detection error counts as an absent hand
//  4. Feed the controller and dispatch its intents in order
//  5. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stop, done chan struct{}) {
	defer close(done)

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				// A dead feed must not leave a button stuck down
				if !a.Step(nil, nil) {
					return
				}
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > idleTimeout() {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			if !activeMode {
				frame.Close()
				// Idle frames count as absence so smoothing state ages out
				if !a.Step(nil, nil) {
					return
				}
				continue
			}

			hands, err := a.detector.Detect(frame)
			a.publishFrame(frame)
			frame.Close()

			var hand *detector.HandLandmarks
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
			} else if len(hands) > 0 {
				hand = &hands[0]
			}

			if !a.Step(hand, hands) {
				return
			}
		}
	}
}

// Step feeds one detection result through the controller and dispatches
// the resulting intents. The background pipeline calls it every frame;
// tests call it directly with scripted detections. It returns false when
// injection failed and the pipeline must stop.
func (a *App) Step(hand *detector.HandLandmarks, hands []detector.HandLandmarks) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.frames++

	if tracked := hand != nil; tracked != a.tracked {
		a.tracked = tracked
		if a.onTracking != nil {
			go a.onTracking(tracked)
		}
	}

	intents := a.controller.Step(hand)

	for _, intent := range intents {
		if a.injector != nil {
			if err := pointer.Dispatch(a.injector, intent); err != nil {
				log.Printf("Pointer injection failed: %v", err)
				a.releaseButton()
				a.enabled = false
				return false
			}
		}

		switch intent.Type {
		case control.IntentMove:
			a.lastX, a.lastY = intent.X, intent.Y
		default:
			a.recordEvent(intent)
		}
	}

	if a.config.Live != nil && a.config.Live.ClientCount() > 0 {
		a.config.Live.Publish(server.Update{
			Hands:     hands,
			Intents:   intents,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	return true
}

// publishFrame pushes the current frame to the MJPEG stream when someone
// is watching. Encoding is skipped otherwise.
func (a *App) publishFrame(frame *gocv.Mat) {
	stream := a.config.Stream
	if stream == nil || !stream.HasViewers() {
		return
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	stream.UpdateFrame(data)
}
