package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pyframe/pyframe/internal/catalog"
	"github.com/pyframe/pyframe/internal/config"
	"github.com/pyframe/pyframe/internal/ipc"
	"github.com/pyframe/pyframe/internal/viewer"
)

func NewStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the slideshow",
		Long:  `Starts the fullscreen slideshow. This is also what running pyframe with no subcommand does.`,
		Run: func(cmd *cobra.Command, args []string) {
			StartViewer()
		},
	}
}

// StartViewer validates settings, scans the catalog and runs the
// fullscreen viewer until the user quits.
func StartViewer() {
	if os.Getenv("BACKGROUND_PROCESS") == "1" {
		setupRotatingLogger()
	}
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	log.Infof("StartViewer() started in PID: %d", os.Getpid())

	// Headless boxes often have a display on :0 that just isn't in the
	// environment.
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		log.Info("No display configured, defaulting DISPLAY to :0")
		os.Setenv("DISPLAY", ":0")
	}

	settings, err := config.FromViper()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("pyframe is already running, exiting")
		os.Exit(0)
	}

	if viper.GetBool("background") && os.Getenv("BACKGROUND_PROCESS") != "1" {
		ctx := &daemon.Context{
			Env: append(os.Environ(), "BACKGROUND_PROCESS=1"),
		}
		child, err := ctx.Reborn()
		if err != nil {
			log.Fatalf("Failed to daemonize: %v", err)
		}
		if child != nil {
			log.Infof("pyframe started in background, PID: %d", child.Pid)
			return
		}
		defer ctx.Release()
		setupRotatingLogger()
	}

	log.Info("Searching for images ...")
	cat, err := catalog.Scan(settings.ImageDirectory)
	if err != nil {
		log.Fatalf("Error scanning image directory: %v", err)
	}
	log.Infof("Found %d images in %s", cat.Len(), settings.ImageDirectory)

	watcher, err := catalog.NewWatcher(settings.ImageDirectory)
	if err != nil {
		log.Errorf("Directory watching disabled: %v", err)
		watcher = nil
	}

	var watchEvents <-chan catalog.Event
	if watcher != nil {
		if err := watcher.Start(); err != nil {
			log.Errorf("Directory watching disabled: %v", err)
		} else {
			watchEvents = watcher.Events()
			defer watcher.Stop()
		}
	}

	v := viewer.New(settings, cat, watchEvents)

	go func() {
		log.Infof("Starting socket server")
		ipc.Start(v)
	}()

	log.Info("Slideshow started. Controls:")
	log.Info("  - Left/Right arrows or side clicks: previous/next image")
	log.Info("  - Space or middle click: pause/resume")
	log.Info("  - R: random image, F: fullscreen toggle, ESC/Q: quit")

	if err := v.Run(); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}

	os.Remove(ipc.SocketPath())
	log.Infof("pyframe exited")
}

func setupRotatingLogger() {
	home := os.Getenv("HOME")
	logDir := filepath.Join(home, ".local", "share", "pyframe")
	logPath := filepath.Join(logDir, "pyframe.log")

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	log.SetLevel(log.InfoLevel)
}
