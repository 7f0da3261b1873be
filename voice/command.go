package voice

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// exitPermissionDenied is the shell convention for "found but not executable"
// and is also what capture helpers return when the microphone is refused.
const exitPermissionDenied = 126

// LangEnv carries the language to voice commands.
const LangEnv = "GUARDIAO_VOICE_LANG"

// splitCommand splits a configured command line on whitespace.
func splitCommand(line string) []string { return strings.Fields(line) }

// CommandRecognizer captures speech by running an external speech-to-text
// command; its trimmed stdout is the utterance.
type CommandRecognizer struct {
	argv []string

	mu     sync.Mutex
	cancel context.CancelFunc // set while a run is active and not stopped
	run    uint64
}

// NewCommandRecognizer parses command. An empty command yields nil.
func NewCommandRecognizer(command string) *CommandRecognizer {
	argv := splitCommand(command)
	if len(argv) == 0 {
		return nil
	}
	return &CommandRecognizer{argv: argv}
}

// CommandCapability returns Supported when command is set, Unsupported otherwise.
func CommandCapability(command string) Capability {
	if r := NewCommandRecognizer(command); r != nil {
		return Supported(r)
	}
	return NoRecognizer()
}

// Start runs the command in the background. A second Start while one runs
// fails; a stopped run never blocks the next Start.
func (r *CommandRecognizer) Start(lang string, sink Sink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return errors.New("recognition already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Env = append(os.Environ(), LangEnv+"="+lang)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cancel()
		if errors.Is(err, fs.ErrPermission) {
			go func() {
				sink.Error(CodeNotAllowed)
				sink.End()
			}()
			return nil
		}
		return err
	}
	r.run++
	run := r.run
	r.cancel = cancel

	go func() {
		err := cmd.Wait()
		r.mu.Lock()
		if r.run == run {
			r.cancel = nil
		}
		r.mu.Unlock()
		defer sink.End()

		if ctx.Err() != nil {
			// stopped by the user
			return
		}
		cancel()
		if err != nil {
			log.Debug().Err(err).Str("stderr", strings.TrimSpace(stderr.String())).Msg("speech command failed")
			sink.Error(classifyExit(err))
			return
		}
		text := strings.TrimSpace(stdout.String())
		if text == "" {
			sink.Error(CodeNoSpeech)
			return
		}
		sink.Result(text)
	}()
	return nil
}

// Stop kills the running command, if any, and frees the recognizer at once.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func classifyExit(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == exitPermissionDenied {
		return CodeNotAllowed
	}
	if errors.Is(err, fs.ErrPermission) {
		return CodeNotAllowed
	}
	return CodeUnknown
}

// CommandSynthesizer narrates by running an external text-to-speech command
// with the text on stdin.
type CommandSynthesizer struct {
	argv []string
}

// NewCommandSynthesizer parses command. An empty command yields nil.
func NewCommandSynthesizer(command string) *CommandSynthesizer {
	argv := splitCommand(command)
	if len(argv) == 0 {
		return nil
	}
	return &CommandSynthesizer{argv: argv}
}

// Speak runs the command and waits; cancelling ctx kills it.
func (s *CommandSynthesizer) Speak(ctx context.Context, text, lang string) error {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Env = append(os.Environ(), LangEnv+"="+lang)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.New(strings.TrimSpace(err.Error() + " " + stderr.String()))
	}
	return nil
}

// Synth returns s as a Synthesizer, or nil when s is nil, so a missing command
// keeps narration silent instead of holding a typed nil.
func (s *CommandSynthesizer) Synth() Synthesizer {
	if s == nil {
		return nil
	}
	return s
}
