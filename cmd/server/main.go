package main

import (
	"github.com/ecard-vn/ecard/internal/app/server"
	"github.com/ecard-vn/ecard/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	logging.Fatal("Game server exited: ", zap.Error(
		server.NewServer().Start(),
	))
}
