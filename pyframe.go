package pyframe

import _ "embed"

//go:embed VERSION
var Version string

//go:embed pyframe.env
var DefaultConfig string
