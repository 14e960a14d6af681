package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/bugdeck/internal/api"
	"github.com/rpggio/bugdeck/internal/config"
	"github.com/rpggio/bugdeck/internal/credstore"
	"github.com/rpggio/bugdeck/internal/session"
	"github.com/rpggio/bugdeck/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.State.Dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "state dir error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs always go to a file.
	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = filepath.Join(cfg.State.Dir, "bugdeck.log")
	}
	logWriter, logFile, err := newLogFileWriter(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	sqliteStore, err := credstore.OpenSQLite(filepath.Join(cfg.State.Dir, "credentials.db"))
	if err != nil {
		logger.Error("failed to open credential store", "error", err)
		os.Exit(1)
	}
	defer sqliteStore.Close()

	creds, err := credstore.NewSealedStore(sqliteStore, filepath.Join(cfg.State.Dir, "bugdeck.key"))
	if err != nil {
		logger.Error("failed to open credential key", "error", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, creds, cfg.API.Timeout(), logger)
	sessions := session.NewManager(client, creds, logger)
	client.SetUnauthorizedHandler(sessions.Invalidate)

	program := tea.NewProgram(tui.NewModel(sessions, client), tea.WithAltScreen())

	// Rejected tokens mid-request land here and bounce the UI to login.
	sessions.SetOnChange(func(state session.State) {
		program.Send(tui.SessionChangedMsg{State: state})
	})

	if _, err := program.Run(); err != nil {
		logger.Error("tui error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}
	if size <= keepLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
