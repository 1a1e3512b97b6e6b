// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger with
// convenience constructors and context helpers used throughout
// go-note-keeper.
//
// The Logger type embeds zerolog.Logger so the full zerolog API is
// available directly. Application code passes *Logger by pointer and
// obtains request-scoped loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding exposes the
// full zerolog API while allowing helper methods without touching the
// upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a production *Logger for the given role label
// (e.g. "note-server", "note-client"). Output is JSON on stdout with a
// "role" field, a timestamp and the calling function name under "func".
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stdout)
}

// NewFileLogger writes JSON logs to the given file, falling back to stdout
// when the file cannot be opened. Intended for the CLI client, where stdout
// is reserved for command output.
func NewFileLogger(role, path string) *Logger {
	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(role, os.Stdout)
	}
	return newLogger(role, out)
}

func newLogger(role string, out io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. For tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithContext attaches the logger to ctx so downstream code can recover it
// via FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromRequest extracts the request-scoped logger attached by the logging
// middleware. Falls back to zerolog's global logger when none is attached.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the logger stored in ctx. Never returns nil: zerolog
// falls back to its global logger when ctx carries none.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
