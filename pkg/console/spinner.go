package console

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner wraps the spinner functionality with TTY detection so progress
// animation never ends up in piped output.
type Spinner struct {
	spinner *spinner.Spinner
	enabled bool
}

// NewSpinner creates a new spinner with the given message. The spinner is
// automatically disabled when not running in a TTY.
func NewSpinner(message string) *Spinner {
	enabled := isatty.IsTerminal(1)

	s := &Spinner{enabled: enabled}
	if enabled {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Suffix = " " + message
		_ = s.spinner.Color("cyan") // fallback rendering is fine
	}

	return s
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	if s.enabled && s.spinner != nil {
		s.spinner.Start()
	}
}

// Stop stops the spinner animation
func (s *Spinner) Stop() {
	if s.enabled && s.spinner != nil {
		s.spinner.Stop()
	}
}

// UpdateMessage updates the spinner message
func (s *Spinner) UpdateMessage(message string) {
	if s.enabled && s.spinner != nil {
		s.spinner.Suffix = " " + message
	}
}
