package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	var (
		cameraID   = flag.Int("camera", 0, "camera device index")
		v4l2Device = flag.String("v4l2", "", "v4l2 device path (overrides -camera)")
		scrcpy     = flag.Bool("scrcpy", false, "stream an Android device into the v4l2 device with scrcpy")
		preset     = flag.String("preset", "", "scrcpy device preset name")
		addr       = flag.String("addr", ":8080", "HTTP server listen address")
	)
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Pointer Control")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dbDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	controlCfg, err := st.Settings().LoadControlConfig()
	if err != nil {
		log.Fatalf("Stored control config is invalid: %v", err)
	}

	screen, err := pointer.DetectScreen()
	if err != nil {
		log.Fatalf("Failed to detect screen geometry: %v", err)
	}
	log.Printf("Screen: %dx%d", screen.Width, screen.Height)

	// Optionally bring up the scrcpy feed before opening the camera
	var feed *capture.ScrcpyFeed
	if *scrcpy {
		feedCfg := capture.DefaultFeedConfig()
		if *v4l2Device != "" {
			feedCfg.V4L2Device = *v4l2Device
		}
		if *preset != "" {
			extra, err := capture.FeedPreset(*preset)
			if err != nil {
				log.Fatalf("Unknown scrcpy preset %q (available: %v)", *preset, capture.FeedPresetNames())
			}
			feedCfg.Extra = extra
		}

		feed = capture.NewScrcpyFeed(feedCfg)
		if err := feed.Start(); err != nil {
			log.Fatalf("Failed to start scrcpy feed: %v", err)
		}
		defer feed.Stop()

		if *v4l2Device == "" {
			*v4l2Device = feed.Device()
		}
	}

	live := server.NewLiveHandler()
	stream := server.NewStreamHandler()

	application, err := app.New(app.Config{
		Store:        st,
		CameraID:     *cameraID,
		CameraDevice: *v4l2Device,
		Control:      controlCfg,
		Screen:       screen,
		Injector:     pointer.NewRobotgoInjector(),
		Live:         live,
		Stream:       stream,
	})
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Stream:    stream,
		Live:      live,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
	})
	application.OnTracking(t.SetTracking)
	t.OnQuit(func() {
		application.Stop()
		if feed != nil {
			feed.Stop()
		}
	})

	// Blocks until quit
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
