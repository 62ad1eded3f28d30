package main

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "wordlink/internal/api/http"
	"wordlink/internal/api/ws"
	"wordlink/internal/config"
	"wordlink/internal/room"
	"wordlink/internal/scheduler"
	"wordlink/internal/store"
	"wordlink/internal/words"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Load()
	clock := clockwork.NewRealClock()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	rooms := room.NewManager(mem, hub, words.Default(), clock, rng)
	gw := ws.NewGateway(hub, rooms, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go scheduler.New(clock, rooms, cfg.RoomTTL).Run(ctx)

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.HTTPAddr).Msg("listen failed")
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	srv := &http.Server{Handler: httpapi.NewRouter(gw, mem)}
	if err := serve(ctx, srv, ln); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// serve runs srv on ln until ctx is cancelled, then drains open
// connections before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
