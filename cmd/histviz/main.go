package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"histviz/internal/app"
	"histviz/internal/config"
	"histviz/pkg/contracts"
)

// Embedded chart page and static assets
//
//go:embed all:web
var webFiles embed.FS

func main() {
	configFile := flag.String("config", "", "path to config.yaml (defaults to the usual locations)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.Info())
		return
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var webFS fs.FS
	if sub, err := fs.Sub(webFiles, "web"); err == nil {
		webFS = sub
	} else {
		slog.Warn("web assets not embedded", slog.String("error", err.Error()))
	}

	application, err := app.NewApplication(cfg, webFS)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
