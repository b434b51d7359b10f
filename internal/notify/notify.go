package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Notification is a short user-facing message, rendered by the storefront as a toast.
type Notification struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	ProductId int       `json:"product_id,omitempty"`
	At        time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log.With("component", "notify")}
}

func (l *Log) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	if n.Level == LevelError {
		level = slog.LevelWarn
	}
	l.log.Log(ctx, level, n.Message, "product_id", n.ProductId)
}

// Console prints toasts to a terminal, red for errors and green otherwise.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	error   *color.Color
	success *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		error:   color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
	}
}

func (c *Console) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	paint := c.success
	if n.Level == LevelError {
		paint = c.error
	}
	fmt.Fprintf(c.out, "%s %s\n", n.At.Format(time.Kitchen), paint.Sprint(n.Message))
}

// Recorder keeps the most recent notifications so they can be polled.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, n)
	if over := len(r.items) - r.limit; over > 0 {
		r.items = append(r.items[:0:0], r.items[over:]...)
	}
}

// Recent returns recorded notifications, oldest first.
func (r *Recorder) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Recorder) Messages() []string {
	recent := r.Recent()
	out := make([]string, 0, len(recent))
	for _, n := range recent {
		out = append(out, n.Message)
	}
	return out
}

type multi []Notifier

func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

func (m multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
