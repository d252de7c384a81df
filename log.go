package dietlp

// Logger receives diagnostic messages from the solver. *log.Logger and
// the loggers returned by slog.NewLogLogger satisfy it.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}
