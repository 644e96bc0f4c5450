package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	createStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var (
	// Enabled controls whether console output is active
	Enabled = true
	// TestMode suppresses all output, including debug logs
	TestMode = false
	// Output is the writer where console messages are written
	Output io.Writer = os.Stdout
	// ErrOutput is the writer where error messages are written
	ErrOutput io.Writer = os.Stderr

	debugLog = newDebugLogger(os.Stderr)
)

func newDebugLogger(w io.Writer) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(log.InfoLevel)
	return l
}

// Configure sets the debug log level. The flag wins over SMOOTH_LOG_LEVEL.
func Configure(verbose bool) {
	level := strings.ToLower(os.Getenv("SMOOTH_LOG_LEVEL"))
	if verbose {
		level = "debug"
	}

	switch level {
	case "debug":
		debugLog.SetLevel(log.DebugLevel)
	case "warn":
		debugLog.SetLevel(log.WarnLevel)
	case "error":
		debugLog.SetLevel(log.ErrorLevel)
	default:
		debugLog.SetLevel(log.InfoLevel)
	}
}

// Log writes a plain message if logging is enabled
func Log(format string, args ...interface{}) {
	if Enabled && !TestMode {
		fmt.Fprintf(Output, format+"\n", args...)
	}
}

// Info is an alias of Log kept for call sites that read better with it.
func Info(format string, args ...interface{}) {
	Log(format, args...)
}

// Success logs a completion message.
func Success(format string, args ...interface{}) {
	Log("✨ "+format, args...)
}

// Error writes "Error: <message>" to the error output
func Error(format string, args ...interface{}) {
	if TestMode {
		return
	}
	fmt.Fprintf(ErrOutput, "%s %s\n", errorStyle.Render("Error:"), fmt.Sprintf(format, args...))
}

func Warning(format string, args ...interface{}) {
	if !Enabled || TestMode {
		return
	}
	fmt.Fprintf(Output, "%s %s\n", warningStyle.Render("Warning:"), fmt.Sprintf(format, args...))
}

// Command prints a shell command the user is expected to run.
func Command(format string, args ...interface{}) {
	Log("$ %s", commandStyle.Render(fmt.Sprintf(format, args...)))
}

// Create reports a generated file.
func Create(path string) {
	Log("%s %s", createStyle.Render("CREATE"), path)
}

// Update reports a modified file.
func Update(path string) {
	Log("%s %s", updateStyle.Render("UPDATE"), path)
}

// Debug logs structured key/value pairs at debug level.
func Debug(msg string, keyvals ...interface{}) {
	if TestMode {
		return
	}
	debugLog.Debug(msg, keyvals...)
}

// DebugDiff logs the difference between two versions of a file at debug level.
func DebugDiff(path, before, after string) {
	if TestMode || debugLog.GetLevel() > log.DebugLevel {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	debugLog.Debug("modified file", "path", path, "diff", dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs)))
}

// Disable disables console output
func Disable() {
	Enabled = false
}

// Enable enables console output
func Enable() {
	Enabled = true
}

// Reset resets the logger to its default state
func Reset() {
	Enabled = true
	TestMode = false
	Output = os.Stdout
	ErrOutput = os.Stderr
	debugLog = newDebugLogger(os.Stderr)
}

// SetTestMode enables test mode (suppresses all logs)
func SetTestMode(enabled bool) {
	TestMode = enabled
}

// Spinner is an indeterminate progress indicator. The bar animates itself
// until Stop is called.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// StartSpinner starts a loading spinner with the given message. It returns nil
// in test mode or when output is disabled; Stop is safe on a nil Spinner.
func StartSpinner(message string) *Spinner {
	if TestMode || !Enabled {
		return nil
	}

	return &Spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(message),
			progressbar.OptionSetWidth(10),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWriter(Output),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Stop halts the spinner and clears its line.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	_ = s.bar.Finish()
}
