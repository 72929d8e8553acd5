package main

import (
	"os"

	"github.com/leptonai/cuda-archs/cmd/cuda-archs/command"
	"github.com/leptonai/cuda-archs/pkg/log"
)

func main() {
	app := command.App()
	if err := app.Run(command.ReorderArgs(app, os.Args)); err != nil {
		log.Logger.Error(err)
		log.Logger.Sync()
		os.Exit(1)
	}
}
