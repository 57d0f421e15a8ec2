package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chatterm/internal/api"
	"chatterm/internal/cache"
	"chatterm/internal/config"
	"chatterm/internal/export"
	"chatterm/internal/session"
	"chatterm/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "chatterm:", err)
		os.Exit(1)
	}

	if cfg.Debug {
		f, err := tea.LogToFile(cfg.LogPath, "chatterm")
		if err != nil {
			fmt.Fprintln(os.Stderr, "chatterm: open debug log:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		// Nothing may write to the terminal behind the renderer's back.
		log.SetOutput(io.Discard)
	}

	sess, err := session.Load(cfg.TokenPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chatterm: load session:", err)
		os.Exit(1)
	}

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		// The cache is an accelerant, not a requirement.
		log.Printf("cache unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	exporter, err := export.New(cfg.ExportDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chatterm: export dir:", err)
		os.Exit(1)
	}

	client := api.New(cfg.ServerURL, sess)

	app := ui.NewApp(cfg, client, sess, store, exporter)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "chatterm:", err)
		os.Exit(1)
	}
}
