package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// FillType selects how the letterbox/pillarbox bars around a scaled
// image are colored.
type FillType string

const (
	FillBlack     FillType = "BLACK"
	FillWhite     FillType = "WHITE"
	FillTopPixel  FillType = "TOP_PIXEL"
	FillSidePixel FillType = "SIDE_PIXEL"
	FillClosestBW FillType = "CLOSEST_BW"
)

// SlideshowMode selects how the sequencer picks the next image.
type SlideshowMode string

const (
	ModeSequential SlideshowMode = "SEQUENTIAL"
	ModeRandom     SlideshowMode = "RANDOM"
)

// Settings is the immutable process configuration, resolved once at
// startup with precedence CLI > environment (PYFRAME_) > .env file >
// defaults. It is passed by value into the components that need it and
// never read from viper again after construction.
type Settings struct {
	ImageDirectory     string
	FillType           FillType
	SlideshowMode      SlideshowMode
	TransitionDuration float64 // seconds
	SlideshowDelay     float64 // seconds
}

func ParseFillType(s string) (FillType, error) {
	switch FillType(strings.ToUpper(strings.TrimSpace(s))) {
	case FillBlack:
		return FillBlack, nil
	case FillWhite:
		return FillWhite, nil
	case FillTopPixel:
		return FillTopPixel, nil
	case FillSidePixel:
		return FillSidePixel, nil
	case FillClosestBW:
		return FillClosestBW, nil
	}
	return "", fmt.Errorf("invalid fill type %q (expected BLACK, WHITE, TOP_PIXEL, SIDE_PIXEL or CLOSEST_BW)", s)
}

func ParseSlideshowMode(s string) (SlideshowMode, error) {
	switch SlideshowMode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeSequential:
		return ModeSequential, nil
	case ModeRandom:
		return ModeRandom, nil
	}
	return "", fmt.Errorf("invalid slideshow mode %q (expected SEQUENTIAL or RANDOM)", s)
}

// FromViper builds validated Settings from the resolved viper state.
func FromViper() (Settings, error) {
	dir := CanonicalPath(viper.GetString("image_directory"))
	if dir == "" {
		return Settings{}, fmt.Errorf("image directory is not set")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return Settings{}, fmt.Errorf("image directory %q does not exist: %w", dir, err)
	}
	if !info.IsDir() {
		return Settings{}, fmt.Errorf("image directory %q is not a directory", dir)
	}

	fill, err := ParseFillType(viper.GetString("fill_type"))
	if err != nil {
		return Settings{}, err
	}
	mode, err := ParseSlideshowMode(viper.GetString("slideshow_mode"))
	if err != nil {
		return Settings{}, err
	}

	transition, err := secondsValue("transition_duration")
	if err != nil {
		return Settings{}, err
	}
	delay, err := secondsValue("slideshow_delay")
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		ImageDirectory:     dir,
		FillType:           fill,
		SlideshowMode:      mode,
		TransitionDuration: transition,
		SlideshowDelay:     delay,
	}, nil
}

// RemoteSettings configures the WebDAV sync command. List-valued keys
// are whitespace-separated when set through the environment.
type RemoteSettings struct {
	URL      string
	Username string
	Password string
	Dirs     []string
	Workers  int

	Destination string

	IgnoreFiles    []string
	IgnoreContains []string
	IgnoreFolders  []string
}

// RemoteFromViper builds validated RemoteSettings from the resolved
// viper state. The local destination is the image directory, created
// if missing.
func RemoteFromViper() (RemoteSettings, error) {
	url := strings.TrimRight(viper.GetString("remote_url"), "/")
	if url == "" {
		return RemoteSettings{}, fmt.Errorf("remote url is not set")
	}
	username := viper.GetString("remote_username")
	if username == "" {
		return RemoteSettings{}, fmt.Errorf("remote username is not set")
	}
	dirs := viper.GetStringSlice("remote_dirs")
	if len(dirs) == 0 {
		return RemoteSettings{}, fmt.Errorf("remote dirs is not set")
	}
	workers := viper.GetInt("remote_workers")
	if workers < 1 {
		return RemoteSettings{}, fmt.Errorf("remote workers must be >= 1, got %d", workers)
	}
	dest := CanonicalPath(viper.GetString("image_directory"))
	if dest == "" {
		return RemoteSettings{}, fmt.Errorf("image directory is not set")
	}

	return RemoteSettings{
		URL:            url,
		Username:       username,
		Password:       viper.GetString("remote_password"),
		Dirs:           dirs,
		Workers:        workers,
		Destination:    dest,
		IgnoreFiles:    viper.GetStringSlice("remote_ignore_files"),
		IgnoreContains: viper.GetStringSlice("remote_ignore_contains"),
		IgnoreFolders:  viper.GetStringSlice("remote_ignore_folders"),
	}, nil
}

// secondsValue reads a duration key as a string and parses it itself.
// viper's float accessor casts unparseable values to 0, which would
// silently swallow a typo'd environment variable.
func secondsValue(key string) (float64, error) {
	raw := strings.TrimSpace(viper.GetString(key))
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number of seconds, got %q", strings.ReplaceAll(key, "_", " "), raw)
	}
	if val < 0 {
		return 0, fmt.Errorf("%s must be >= 0, got %v", strings.ReplaceAll(key, "_", " "), val)
	}
	return val, nil
}

// CanonicalPath expands a leading ~ to the user's home directory.
func CanonicalPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		return os.Getenv("HOME")
	}

	if strings.HasPrefix(path, "~/") {
		homeDir := os.Getenv("HOME")
		return strings.Replace(path, "~", homeDir, 1)
	}

	return path
}
