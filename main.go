package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"blockfall/session"
	"blockfall/terminal"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h"

	tickInterval = 16 * time.Millisecond
)

func main() {
	var (
		width   = flag.Int("width", 10, "playfield width in cells")
		height  = flag.Int("height", 20, "visible playfield height in cells")
		seed    = flag.Uint64("seed", 0, "piece-order seed, 0 derives one from the session id")
		noGhost = flag.Bool("no-ghost", false, "disable the ghost piece")
		logFile = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	logger, closeLog, err := newLogger(*logFile)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer closeLog()

	input, err := terminal.NewInputReader(logger)
	if err != nil {
		log.Fatalf("unable to open keyboard: %v", err)
	}
	defer input.Close()

	render, err := terminal.NewRenderer(os.Stdout, logger, *noGhost)
	if err != nil {
		log.Fatalf("unable to load renderer: %v", err)
	}

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)

	registry := session.NewRegistry()
	sess := registry.Create(session.Options{Width: *width, Height: *height, Seed: *seed})
	logger.Info("session created", slog.String("id", sess.ID))

	quit := make(chan struct{})
	go input.Listen(quit)

	// fixed-step loop: measure real elapsed time, feed it to the engine.
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			elapsed := float64(now.Sub(last).Microseconds()) / 1000
			last = now
			if input.ConsumeRestart() {
				sess.Restart(uint64(now.UnixNano()))
				logger.Info("session restarted", slog.String("id", sess.ID))
			}
			sess.Step(input.Consume(), elapsed)
			render.Render(sess.Snapshot())
		}
	}
}

// newLogger writes to the given file, or swallows logs when rendering
// owns the terminal and no file was asked for.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}
