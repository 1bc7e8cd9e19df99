package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
	RocketEmoji  = Accent.Sprint("🚀")
	StatsEmoji   = Accent.Sprint("📊")
)

// SmartSpinner wraps a terminal spinner that writes to stderr so stdout stays
// clean for piped JSON.
type SmartSpinner struct {
	spinner *spinner.Spinner
	out     io.Writer
}

func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+initialMessage),
		spinner.WithWriter(os.Stderr),
	)
	return &SmartSpinner{spinner: s, out: os.Stdout}
}

func (s *SmartSpinner) Start() { s.spinner.Start() }
func (s *SmartSpinner) Stop()  { s.spinner.Stop() }

func (s *SmartSpinner) UpdateMessage(msg string) {
	s.spinner.Suffix = " " + msg
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(s.out, msg)
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(s.out, msg)
}

// WithSpinner runs fn behind a spinner and reports how long it took.
func WithSpinner(w io.Writer, message string, fn func() error) error {
	s := NewSmartSpinner(message)
	s.out = w
	s.Start()

	start := time.Now()
	err := fn()
	s.Stop()
	if err != nil {
		return err
	}
	PrintDuration(w, message, time.Since(start))
	return nil
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintSectionBanner(w io.Writer, title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	_, _ = fmt.Fprintf(w, "\n%s\n", separator)
	_, _ = fmt.Fprintf(w, "%s %s\n", RocketEmoji, Accent.Sprint(title))
	_, _ = fmt.Fprintf(w, "%s\n\n", separator)
}

func PrintDuration(w io.Writer, msg string, duration time.Duration) {
	durationStr := Dim.Sprintf("(%s)", duration.Round(10*time.Millisecond))
	_, _ = fmt.Fprintf(w, "%s %s %s\n", SuccessEmoji, Success.Sprint(msg), durationStr)
}

func PrintKeyValue(w io.Writer, key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(w, "   %s %s\n", keyColored, valueColored)
}

// HandleAppError prints err in a friendly way. A nil t prints English labels.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	errorLabel, tryLabel := "Error", "Suggestion"
	if t != nil {
		errorLabel = t.GetMessage("error_prefix", 0, nil)
		tryLabel = t.GetMessage("suggestion_prefix", 0, nil)
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, fmt.Sprintf("%s: %v", errorLabel, err))
		return
	}

	_, _ = fmt.Fprintln(w)
	_, _ = Error.Fprintf(w, "❌ %s [%s]: %s\n", errorLabel, appErr.Type, appErr.Message)
	if detail, ok := appErr.Context["detail"].(string); ok && detail != "" {
		_, _ = Dim.Fprintf(w, "   %s\n", detail)
	}
	if appErr.Err != nil {
		_, _ = Dim.Fprintf(w, "   Details: %v\n", appErr.Err)
	}
	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = Info.Fprintf(w, "💡 %s: ", tryLabel)
		lines := strings.Split(appErr.Suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}
