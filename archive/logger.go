package archive

// Logger receives operational diagnostics that are absorbed rather than
// returned to the caller (§2A, §4.11): a decompression on the single-
// archive path, or a per-archive lookup failure inside the multi-archive
// merge. The default is a no-op; embedding applications wire in their own
// sink by supplying a Logger via WithLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}
