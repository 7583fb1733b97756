// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is the handle packages log through. Obtain one per package via
// WithContext:
//
//	var logger = log.WithContext("pkg", "store")
type Logger = *slog.Logger

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// WithContext returns a logger carrying the given key-value context.
func WithContext(keyValues ...any) Logger {
	return root.Load().With(keyValues...)
}

// SetHandler replaces the root handler for the whole process.
func SetHandler(h slog.Handler) {
	root.Store(slog.New(h))
}

// DiscardHandler returns a handler that drops every record, for tests
// and for embedding the core silently.
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
