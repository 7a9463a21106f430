package capture

import (
	"fmt"
	"log"
	"os/exec"
	"sort"
	"sync"
	"syscall"
	"time"
)

// Scrcpy feed defaults.
const (
	DefaultV4L2Device   = "/dev/video0"
	DefaultFeedMaxSize  = 480
	feedStopGracePeriod = 5 * time.Second
)

// FeedConfig describes a scrcpy stream into a v4l2loopback device. The
// resulting device can then be opened with NewV4L2Camera.
type FeedConfig struct {
	// V4L2Device is the loopback sink, e.g. /dev/video0.
	V4L2Device string
	// MaxSize caps the longer dimension of the streamed video.
	MaxSize int
	// Playback shows the scrcpy mirror window. Off for headless use.
	Playback bool
	// Extra holds additional scrcpy long options without the leading
	// dashes, e.g. "crop" -> "1080:1080:0:600".
	Extra map[string]string
}

// DefaultFeedConfig returns a headless feed into the default loopback device.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		V4L2Device: DefaultV4L2Device,
		MaxSize:    DefaultFeedMaxSize,
	}
}

// FeedPreset returns tuned scrcpy options for a known phone and camera app
// combination. The crop values select the square camera viewfinder region
// of each device's screen.
func FeedPreset(name string) (map[string]string, error) {
	switch name {
	case "Xiaomi Mi 9t - Open Camera":
		return map[string]string{
			"video-codec":   "h264",
			"video-encoder": "OMX.qcom.video.encoder.avc",
			"crop":          "1080:1080:0:600",
		}, nil
	case "Xperia Z2 Tablet - Open Camera":
		return map[string]string{
			"video-codec":   "h264",
			"video-encoder": "OMX.qcom.video.encoder.avc",
			"crop":          "1080:1080:420:0",
			"max-fps":       "10",
		}, nil
	default:
		return nil, fmt.Errorf("unknown feed preset: %s", name)
	}
}

// FeedPresetNames lists the available preset names.
func FeedPresetNames() []string {
	return []string{
		"Xiaomi Mi 9t - Open Camera",
		"Xperia Z2 Tablet - Open Camera",
	}
}

// ScrcpyFeed manages a scrcpy process streaming an Android device's screen
// into a v4l2loopback device.
type ScrcpyFeed struct {
	cfg FeedConfig
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewScrcpyFeed creates a feed manager for the given configuration.
func NewScrcpyFeed(cfg FeedConfig) *ScrcpyFeed {
	if cfg.V4L2Device == "" {
		cfg.V4L2Device = DefaultV4L2Device
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultFeedMaxSize
	}
	return &ScrcpyFeed{cfg: cfg}
}

// Args returns the scrcpy command line arguments for the feed.
// Extra options are sorted so the argument order is stable.
func (f *ScrcpyFeed) Args() []string {
	args := []string{
		fmt.Sprintf("--max-size=%d", f.cfg.MaxSize),
		fmt.Sprintf("--v4l2-sink=%s", f.cfg.V4L2Device),
	}

	keys := make([]string, 0, len(f.cfg.Extra))
	for k := range f.cfg.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, fmt.Sprintf("--%s=%s", k, f.cfg.Extra[k]))
	}

	if !f.cfg.Playback {
		args = append(args, "--no-playback")
	}

	return args
}

// Device returns the v4l2 sink device path the feed streams into.
func (f *ScrcpyFeed) Device() string {
	return f.cfg.V4L2Device
}

// Start launches the scrcpy process. It returns an error if scrcpy is not
// installed or the feed is already running.
func (f *ScrcpyFeed) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cmd != nil {
		return fmt.Errorf("scrcpy feed already running")
	}

	path, err := exec.LookPath("scrcpy")
	if err != nil {
		return fmt.Errorf("scrcpy not found in PATH: %w", err)
	}

	cmd := exec.Command(path, f.Args()...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start scrcpy: %w", err)
	}

	log.Printf("Started scrcpy feed into %s (pid %d)", f.cfg.V4L2Device, cmd.Process.Pid)
	f.cmd = cmd

	return nil
}

// Running returns true if the feed process has been started and not stopped.
func (f *ScrcpyFeed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cmd != nil
}

// Stop terminates the scrcpy process. It sends SIGTERM first and kills the
// process if it has not exited after a grace period.
func (f *ScrcpyFeed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cmd == nil {
		return nil
	}

	cmd := f.cmd
	f.cmd = nil

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-done:
		log.Printf("scrcpy feed stopped")
	case <-time.After(feedStopGracePeriod):
		log.Printf("scrcpy feed did not stop in time, killing")
		cmd.Process.Kill()
		<-done
	}

	return nil
}
