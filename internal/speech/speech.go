// Package speech turns the user's voice into a search query through an
// external speech-to-text program.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrUnsupported means no recognizer is configured.
	ErrUnsupported = errors.New("voice search is not supported")
	// ErrNoSpeech means the recognizer ran but heard nothing.
	ErrNoSpeech = errors.New("no speech recognized")
)

// DefaultTimeout bounds one recognition run.
const DefaultTimeout = 15 * time.Second

// Recognizer produces one transcript per call.
type Recognizer interface {
	Transcribe(ctx context.Context) (string, error)
}

// Unsupported is the fallback recognizer.
type Unsupported struct{}

func (Unsupported) Transcribe(context.Context) (string, error) {
	return "", ErrUnsupported
}

// CommandRecognizer runs a program that listens once and prints the
// transcript on stdout.
type CommandRecognizer struct {
	name    string
	args    []string
	timeout time.Duration
}

// New returns a CommandRecognizer for command, or Unsupported when command
// is empty.
func New(command []string) Recognizer {
	if len(command) == 0 || command[0] == "" {
		return Unsupported{}
	}
	return &CommandRecognizer{
		name:    command[0],
		args:    command[1:],
		timeout: DefaultTimeout,
	}
}

func (r *CommandRecognizer) Transcribe(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.name, r.args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s not found", ErrUnsupported, r.name)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", r.name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", r.name, err)
	}

	text := strings.Join(strings.Fields(stdout.String()), " ")
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
