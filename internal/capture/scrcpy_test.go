package capture

import (
	"strings"
	"testing"
)

func TestScrcpyFeed_Args(t *testing.T) {
	tests := []struct {
		name string
		cfg  FeedConfig
		want []string
	}{
		{
			name: "defaults",
			cfg:  DefaultFeedConfig(),
			want: []string{
				"--max-size=480",
				"--v4l2-sink=/dev/video0",
				"--no-playback",
			},
		},
		{
			name: "with playback",
			cfg: FeedConfig{
				V4L2Device: "/dev/video2",
				MaxSize:    720,
				Playback:   true,
			},
			want: []string{
				"--max-size=720",
				"--v4l2-sink=/dev/video2",
			},
		},
		{
			name: "extra options sorted",
			cfg: FeedConfig{
				V4L2Device: "/dev/video0",
				MaxSize:    480,
				Extra: map[string]string{
					"video-codec": "h264",
					"crop":        "1080:1080:0:600",
				},
			},
			want: []string{
				"--max-size=480",
				"--v4l2-sink=/dev/video0",
				"--crop=1080:1080:0:600",
				"--video-codec=h264",
				"--no-playback",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScrcpyFeed(tt.cfg).Args()
			if len(got) != len(tt.want) {
				t.Fatalf("Args() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Args()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewScrcpyFeed_FillsDefaults(t *testing.T) {
	feed := NewScrcpyFeed(FeedConfig{})

	if feed.Device() != DefaultV4L2Device {
		t.Errorf("Device() = %q, want %q", feed.Device(), DefaultV4L2Device)
	}
	if feed.cfg.MaxSize != DefaultFeedMaxSize {
		t.Errorf("MaxSize = %d, want %d", feed.cfg.MaxSize, DefaultFeedMaxSize)
	}
	if feed.Running() {
		t.Error("feed should not be running before Start()")
	}
}

func TestFeedPreset(t *testing.T) {
	for _, name := range FeedPresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, err := FeedPreset(name)
			if err != nil {
				t.Fatalf("FeedPreset(%q) error = %v", name, err)
			}
			if cfg["video-codec"] != "h264" {
				t.Errorf("video-codec = %q, want h264", cfg["video-codec"])
			}
			if !strings.Contains(cfg["crop"], "1080:1080") {
				t.Errorf("crop = %q, want square 1080 region", cfg["crop"])
			}
		})
	}
}

func TestFeedPreset_Unknown(t *testing.T) {
	if _, err := FeedPreset("Nokia 3310"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestScrcpyFeed_StopWithoutStart(t *testing.T) {
	feed := NewScrcpyFeed(DefaultFeedConfig())

	if err := feed.Stop(); err != nil {
		t.Errorf("Stop() without Start() error = %v", err)
	}
}
