package assets

// Reporter receives progress and problem reports from the loading phase.
type Reporter interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Success(format string, args ...interface{})
}

// NopReporter discards every report.
type NopReporter struct{}

func (NopReporter) Info(string, ...interface{})    {}
func (NopReporter) Warn(string, ...interface{})    {}
func (NopReporter) Error(string, ...interface{})   {}
func (NopReporter) Success(string, ...interface{}) {}
