package ipc

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/viper"

	"github.com/pyframe/pyframe"
)

// GET /status
func statusHandler(viewer ViewerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap := viewer.Snapshot()

		var rss uint64
		var uptime int64
		if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
			if mem, err := proc.MemoryInfo(); err == nil {
				rss = mem.RSS
			}
			if created, err := proc.CreateTime(); err == nil {
				uptime = int64(time.Since(time.UnixMilli(created)).Seconds())
			}
		}

		return c.JSONPretty(http.StatusOK, StatusResponse{
			Status:        "ok",
			Message:       "pyframe is running",
			Version:       strings.Trim(pyframe.Version, "\n\r "),
			PID:           os.Getpid(),
			Socket:        SocketPath(),
			Config:        viper.ConfigFileUsed(),
			CurrentImage:  snap.CurrentImage,
			Paused:        snap.Paused,
			Mode:          snap.Mode,
			CatalogSize:   snap.CatalogSize,
			MemoryRSS:     rss,
			UptimeSeconds: uptime,
		}, "  ")
	}
}

// POST /stop, /next, /previous, /pause, /random
func commandHandler(viewer ViewerInterface, cmd CommandType) echo.HandlerFunc {
	return func(c echo.Context) error {
		viewer.EnqueueCommand(Command{Type: cmd})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
