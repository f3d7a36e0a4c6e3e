package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"holong/internal/blob"
	"holong/internal/state"
	"holong/internal/tui"
)

func main() {
	dbPath, err := blob.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	b, err := blob.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	initial, err := b.Load(time.Now())
	if err != nil {
		// Load always hands back a usable state; a failure here means the
		// stored blob was unreadable and has been replaced by defaults.
		slog.Warn("state blob unreadable, starting fresh", slog.String("error", err.Error()))
	}

	store := state.NewStore(initial)

	// Persist after every mutation. Failures are logged and swallowed; the
	// in-memory state stays authoritative for the session.
	store.OnChange(func(st state.AppState) {
		if err := b.Save(st); err != nil {
			slog.Error("save state", slog.String("error", err.Error()))
		}
	})

	app := tui.NewApp(store)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
