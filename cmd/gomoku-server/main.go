// Command gomoku-server runs the relay server described in spec §4.2: it
// binds a TCP listener, accepts clients, and relays moves between
// room-paired peers.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/korjavin/gomoku-relay/internal/config"
	"github.com/korjavin/gomoku-relay/internal/logger"
	"github.com/korjavin/gomoku-relay/server"
	"github.com/korjavin/gomoku-relay/storage"
	"github.com/rs/zerolog/log"
)

func main() {
	port := 0
	if len(os.Args) > 1 {
		p, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "usage: %s [port]\n", os.Args[0])
			os.Exit(1)
		}
		port = p
	}

	cfg := config.Load(port)
	logger.Init(cfg.LogLevel)

	hub := server.NewHub(cfg.MaxClients, cfg.MaxRooms)

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Msg("match history disabled: failed to open database")
		} else {
			hub.Store = store
			defer store.Close()
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to listen")
	}
	defer ln.Close()

	log.Info().Str("addr", addr).Int("maxClients", cfg.MaxClients).Int("maxRooms", cfg.MaxRooms).Msg("gomoku relay server listening")

	go hub.Run()

	if err := hub.Serve(ln); err != nil {
		log.Fatal().Err(err).Msg("accept loop terminated")
	}
}
