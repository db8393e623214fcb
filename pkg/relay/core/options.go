package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

type OptionKey string

const (
	DispatcherOptionKey OptionKey = "dispatcher"
)

var ErrInvalidOptions = errors.New("invalid dispatcher options")

// Handlers are host hooks called by the dispatcher. All of them are optional.
type Handlers struct {
	// OnError receives every error a scheduled delivery returned, including
	// recovered panics wrapped in *relay.PanicError.
	OnError func(ctx context.Context, err error)
	// OnComplete runs in the completion step of every delivery. A panic here
	// is not recovered.
	OnComplete func(ctx context.Context)
}

type Options struct {
	// MaxWorkers bounds the number of deliveries running at once, 0 means NumCPU
	MaxWorkers int `yaml:"max_workers"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// LogErrors installs LogErrors as OnError when no OnError hook is set
	LogErrors bool `yaml:"log_errors"`

	Logger   *slog.Logger `yaml:"-"`
	Handlers Handlers     `yaml:"-"`
}

func DefaultOptions() Options {
	return Options{
		MaxWorkers: runtime.NumCPU(),
		LogLevel:   "info",
	}
}

func (o Options) Validate() error {
	var errs []error
	if o.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("%w: max_workers %d is negative", ErrInvalidOptions, o.MaxWorkers))
	}
	if _, err := parseLevel(o.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel.
func (o Options) Level() slog.Level {
	l, err := parseLevel(o.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidOptions, s)
}

// ParseOptions decodes YAML on top of DefaultOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read dispatcher options: %w", err)
	}
	return ParseOptions(data)
}

func WithDispatcher(ctx context.Context, d *Dispatcher) context.Context {
	return context.WithValue(ctx, DispatcherOptionKey, d)
}

// DispatcherFrom returns the dispatcher stored in ctx, or the shared one.
func DispatcherFrom(ctx context.Context) *Dispatcher {
	d, ok := ctx.Value(DispatcherOptionKey).(*Dispatcher)
	if ok && d != nil {
		return d
	}
	return Shared()
}

// LogErrors returns an OnError hook that logs every delivery failure.
func LogErrors(logger *slog.Logger) func(ctx context.Context, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, err error) {
		logger.ErrorContext(ctx, "delivery failed", slog.Any("error", err))
	}
}
