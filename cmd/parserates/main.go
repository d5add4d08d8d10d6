// parserates reads recognized sign text from a file (or stdin) and
// prints the extracted fee rule set as JSON. Exit status 1 means the
// text yielded no usable rules.
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jaeyoung-oh/parkrate/internal/ocrparse"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		text []byte
		err  error
	)
	switch len(os.Args) {
	case 1:
		text, err = io.ReadAll(os.Stdin)
	case 2:
		text, err = os.ReadFile(os.Args[1])
	default:
		logger.Error("usage", "cmd", "parserates [sign-text-file]")
		os.Exit(2)
	}
	if err != nil {
		logger.Error("reading sign text", "error", err)
		os.Exit(1)
	}

	parser := ocrparse.NewParser(ocrparse.Config{}, logger)

	start := time.Now()
	res := parser.Parse(string(text), nil)
	dur := time.Since(start)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encoding result", "error", err)
		os.Exit(1)
	}
	if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
		logger.Error("writing result", "error", err)
		os.Exit(1)
	}

	logger.Info("parse done",
		"bytes", len(text),
		"rows", len(res.FeeRows),
		"daily_max", res.DailyMaxFee != nil,
		"success", res.Success,
		"duration_ms", dur.Milliseconds(),
	)
	if !res.Success {
		os.Exit(1)
	}
}
