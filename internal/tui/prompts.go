package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	gitsyncerrors "gitsync.dev/gitsync/internal/errors"
	"gitsync.dev/gitsync/internal/utils"
)

// Prompter asks the user for a line of text
type Prompter interface {
	Input(message, defaultValue string) (string, error)
}

// SurveyPrompter prompts with survey when stdin is a terminal and falls back
// to reading plain lines from stdin otherwise.
type SurveyPrompter struct {
	stdio       terminal.Stdio
	lines       *bufio.Reader
	interactive func() bool
}

// NewSurveyPrompter creates a prompter bound to the process's standard streams
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{
		stdio:       terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		lines:       bufio.NewReader(os.Stdin),
		interactive: utils.IsInteractive,
	}
}

// NewLinePrompter creates a prompter that never opens a terminal UI and reads answers from r
func NewLinePrompter(r io.Reader) *SurveyPrompter {
	return &SurveyPrompter{
		lines:       bufio.NewReader(r),
		interactive: func() bool { return false },
	}
}

// Input asks for a single line. The answer is returned as typed, without trimming.
func (p *SurveyPrompter) Input(message, defaultValue string) (string, error) {
	if !p.interactive() {
		return p.readLine(defaultValue)
	}

	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	err := survey.AskOne(prompt, &answer, survey.WithStdio(p.stdio.In, p.stdio.Out, p.stdio.Err))
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", fmt.Errorf("prompt canceled: %w", err)
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return answer, nil
}

func (p *SurveyPrompter) readLine(defaultValue string) (string, error) {
	line, err := utils.ReadLine(p.lines)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", gitsyncerrors.ErrNoInput
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}
