//docker:user sourcegraph

// searcher is a simple service which exposes an API to search a set of
// named text sources for a pattern. See the search package for more
// information.
package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/inconshreveable/log15"
	"go.uber.org/zap"

	"github.com/sourcegraph/utext/cmd/searcher/search"
	"github.com/sourcegraph/utext/internal/shutdown"
)

var insecureDev, _ = strconv.ParseBool(envOr("INSECURE_DEV", "false"))

const defaultPort = "3181"

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	log.SetFlags(0)

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("searcher: building zap logger: %s", err)
	}
	defer zlog.Sync()

	registry := shutdown.New()
	defer func() {
		if err := registry.Close(); err != nil {
			zlog.Error("searcher: shutdown", zap.Error(err))
		}
	}()

	service := &search.Service{
		Log: log15.Root(),
	}

	host := ""
	if insecureDev {
		host = "127.0.0.1"
	}
	port := envOr("SEARCHER_PORT", defaultPort)
	addr := net.JoinHostPort(host, port)
	server := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For kubernetes liveness and readiness probes
			if r.URL.Path == "/healthz" {
				w.WriteHeader(200)
				w.Write([]byte("ok"))
				return
			}
			service.ServeHTTP(w, r)
		}),
	}
	registry.Push(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})
	go shutdownOnSIGINT(registry, zlog)

	zlog.Info("searcher: listening", zap.String("addr", server.Addr))
	log15.Info("searcher: listening", "addr", server.Addr)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func shutdownOnSIGINT(registry *shutdown.Registry, zlog *zap.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	if err := registry.Close(); err != nil {
		zlog.Fatal("graceful server shutdown failed, will exit", zap.Error(err))
	}
	os.Exit(0)
}
