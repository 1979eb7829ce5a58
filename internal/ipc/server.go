package ipc

import (
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// SocketPath returns the control socket location, preferring the
// user's runtime directory.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return sockDir + "/pyframe.sock"
}

// Start serves the control API on the unix socket. Blocks; run it on
// its own goroutine.
func Start(viewer ViewerInterface) {
	sockPath := SocketPath()

	if _, err := os.Stat(sockPath); err == nil {
		_ = os.Remove(sockPath)
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = listener

	e.Use(CharmLog())

	RegisterRoutes(e, viewer)

	server := new(http.Server)
	if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Socket server error: %v", err)
	}
}
