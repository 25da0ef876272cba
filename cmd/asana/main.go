package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/asana/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/asana/config.toml)")
	lang := flag.String("lang", "", "display language, zh or en (optional)")
	offlineFilter := flag.Bool("offline-filter", false, "apply search and difficulty to bundled data when offline")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Language: *lang}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "offline-filter" {
			opts.OfflineFilter = offlineFilter
		}
	})

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "asana: %v\n", err)
		return 1
	}
	return 0
}
