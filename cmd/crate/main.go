package main

import (
	"errors"
	"os"

	cmd "github.com/MrSnakeDoc/crate/internal"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/middleware"
)

func main() {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, middleware.ErrLogged) {
		logger.LogError("%v", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
