package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avolkenstein/planweave/internal/assistant"
	"github.com/avolkenstein/planweave/internal/cli"
	"github.com/avolkenstein/planweave/internal/history"
	"github.com/avolkenstein/planweave/internal/store"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env next to the binary is optional.
	_ = godotenv.Load()

	// Determine data path: env var or default ~/.planweave/tasks.yaml
	dataPath := os.Getenv("PLANWEAVE_DATA")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dataPath = filepath.Join(home, ".planweave", "tasks.yaml")
	}

	st := store.New(dataPath)
	if err := st.Load(); err != nil {
		// A malformed document is not fatal: the raw text is kept and
		// the collection starts empty.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	app := &cli.App{Store: st}

	// Revision history lives in SQLite beside the task file.
	historyPath := os.Getenv("PLANWEAVE_HISTORY")
	if historyPath == "" {
		historyPath = filepath.Join(filepath.Dir(dataPath), "history.db")
	}
	if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	db, err := history.OpenDB(historyPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	log := history.NewRevisionLog(db)
	app.History = log

	// Every persisted mutation appends a revision for undo.
	st.OnChange(func(reason, yamlText string) {
		if err := log.Append(context.Background(), reason, yamlText); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: recording history: %v\n", err)
		}
	})

	// Wire the assistant only when the LLM is enabled.
	llmCfg := assistant.LoadConfig()
	if llmCfg.Enabled {
		var observer assistant.Observer = assistant.NoopObserver{}
		if llmCfg.LogCalls {
			observer = assistant.NewLogObserver(os.Stderr)
		}
		client := assistant.NewOllamaClient(llmCfg, observer)
		app.Assistant = assistant.NewService(client)
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
