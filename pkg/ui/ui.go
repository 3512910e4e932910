// Package ui is the terminal front end: coloured status lines and the
// prompts used when a payload has to be saved instead of copied.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"fetchit/pkg/delivery"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
	PromptColor  = color.New(color.FgMagenta)
)

// Terminal prints to Out and reads answers from In. When In is not an
// interactive terminal, prompts are declined unless AssumeYes is set.
type Terminal struct {
	In          io.Reader
	Out         io.Writer
	AssumeYes   bool
	Interactive bool

	reader *bufio.Reader
}

// NewTerminal returns a Terminal on stdin and stderr.
func NewTerminal(assumeYes bool) *Terminal {
	return &Terminal{
		In:          os.Stdin,
		Out:         os.Stderr,
		AssumeYes:   assumeYes,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

func (t *Terminal) out() io.Writer {
	if t.Out == nil {
		return os.Stderr
	}
	return t.Out
}

func (t *Terminal) Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(t.out(), format+"\n", a...)
}

func (t *Terminal) Info(format string, a ...interface{}) {
	InfoColor.Fprintf(t.out(), format+"\n", a...)
}

func (t *Terminal) Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(t.out(), format+"\n", a...)
}

func (t *Terminal) Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(t.out(), format+"\n", a...)
}

func (t *Terminal) Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(t.out(), format+"\n", a...)
}

// ShowList prints a title followed by one indented line per item.
func (t *Terminal) ShowList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	t.Header("%s", title)
	for _, item := range items {
		PathColor.Fprintf(t.out(), "  - %s\n", item)
	}
}

// Confirm asks a y/N question. Anything but "y" or "yes" is a no.
func (t *Terminal) Confirm(question string) (bool, error) {
	if t.AssumeYes {
		return true, nil
	}
	if !t.Interactive {
		return false, nil
	}
	fmt.Fprint(t.out(), PromptColor.Sprintf("%s (y/N): ", question))
	answer, err := t.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// ChooseSavePath implements delivery.PathChooser. The user confirms the
// save, then may type a different path; an empty answer keeps the
// suggestion.
func (t *Terminal) ChooseSavePath(suggested string, reason delivery.FailureReason) (string, bool, error) {
	t.Warning("fetchit: %s; the payload can be saved to a file instead.", reason)

	ok, err := t.Confirm("Save to a file?")
	if err != nil || !ok {
		return "", false, err
	}
	if t.AssumeYes || !t.Interactive {
		return suggested, true, nil
	}

	fmt.Fprint(t.out(), PromptColor.Sprintf("Save as [%s]: ", suggested))
	answer, err := t.readLine()
	if err != nil {
		return "", false, err
	}
	if answer == "" {
		return suggested, true, nil
	}
	return answer, true, nil
}

func (t *Terminal) readLine() (string, error) {
	if t.reader == nil {
		in := t.In
		if in == nil {
			in = os.Stdin
		}
		t.reader = bufio.NewReader(in)
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
