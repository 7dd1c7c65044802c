package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"merkled/internal/app"
	"merkled/internal/buildinfo"
	"merkled/internal/rpc"
)

func main() {
	var bind, keyPath string
	pflag.StringVar(&bind, "bind", "127.0.0.1:8420", "listen address")
	pflag.StringVar(&keyPath, "key", "data/node_key.json", "node key file")
	pflag.Parse()

	log.SetOutput(os.Stdout)

	eng := app.NewEngine(keyPath)
	if pk := eng.PubKeyHex(); pk != "" {
		log.Printf("[key] node pubkey %s", pk)
	}

	srv := &http.Server{
		Addr:    bind,
		Handler: rpc.NewRouter(eng),
	}
	log.Printf("[OK] %s %s listening on http://%s", buildinfo.Name, buildinfo.Version, bind)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[RUNTIME] serve error: %v", err)
	}
}
