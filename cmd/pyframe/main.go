package main

import (
	// import image formats to register them
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/pyframe/pyframe/internal/cli"
)

func main() {
	cli.Execute()
}
