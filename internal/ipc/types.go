package ipc

type CommandType string

const (
	CommandStop     CommandType = "stop"
	CommandNext     CommandType = "next"
	CommandPrevious CommandType = "previous"
	CommandPause    CommandType = "pause"
	CommandRandom   CommandType = "random"
)

type Command struct {
	Type CommandType `json:"type"`
}

// ViewerInterface is what the control socket needs from the running
// slideshow: a snapshot of its state, and a queue to push navigation
// commands onto.
type ViewerInterface interface {
	Snapshot() ViewerStatus
	EnqueueCommand(Command)
}

// ViewerStatus is the slideshow half of a /status response.
type ViewerStatus struct {
	CurrentImage string `json:"current_image"`
	Paused       bool   `json:"paused"`
	Mode         string `json:"mode"`
	CatalogSize  int    `json:"catalog_size"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// StatusResponse is the full /status payload: viewer state plus
// process-level details.
type StatusResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Version       string `json:"version"`
	PID           int    `json:"pid"`
	Socket        string `json:"socket"`
	Config        string `json:"config"`
	CurrentImage  string `json:"current_image"`
	Paused        bool   `json:"paused"`
	Mode          string `json:"mode"`
	CatalogSize   int    `json:"catalog_size"`
	MemoryRSS     uint64 `json:"memory_rss"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
