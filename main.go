package main

import (
	"github.com/arkline/fxquant/internal/cli"
)

func main() {
	cli.Run()
}
