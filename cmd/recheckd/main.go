// Command recheckd runs the analyzer as an HTTP service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GetPageSpeed/recheck/server"
)

func main() {
	configFile := flag.String("config", "", "TOML config file (optional; when absent, built-in defaults are used)")
	addr := flag.String("addr", "", "listener address, overrides config file (default :8080)")
	flag.Parse()

	cfg := server.DefaultServerConfig()
	if *configFile != "" {
		loaded, err := server.LoadServerConfig(*configFile)
		if err != nil {
			log.Fatalf("recheckd: reading config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("recheckd: %v", err)
	}

	go func() {
		log.Printf("recheckd: listening on %s", srv.Addr())
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("recheckd: server stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("recheckd: shutdown error: %v", err)
	}
}
