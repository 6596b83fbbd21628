// Command stubserver runs the in-memory RevBook backend for local
// development. Point the client at it with API_BASE_URL.
// Usage: go run cmd/stubserver/main.go [-addr :8000]
package main

import (
	"flag"
	"os"

	"github.com/revbook/revbook-client/internal/config"
	"github.com/revbook/revbook-client/internal/log"
	"github.com/revbook/revbook-client/internal/stubserver"
)

func main() {
	addr := flag.String("addr", ":8000", "address to listen on")
	flag.Parse()

	cfg := config.NewConfig()
	logger := log.New(cfg.Environment)

	server := stubserver.New(logger)
	logger.Info().Str("addr", *addr).Msg("stub server listening")
	if err := server.Router().Run(*addr); err != nil {
		logger.Error().Err(err).Msg("stub server exited")
		os.Exit(1)
	}
}
