// Package voice captures single utterances from a speech recognizer and
// narrates assistant replies through a speech synthesizer.
//
// Capture and narration are independent: each has its own lock and neither
// waits on the other.
package voice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// DefaultLang is the recognition and narration language.
const DefaultLang = "pt-BR"

// State of the capture side.
type State int

const (
	Idle State = iota
	Listening
	// Unsupported is absorbing: no recognizer was available at construction.
	Unsupported
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Recognizer error codes.
const (
	CodeNotAllowed = "not-allowed"
	CodeNoSpeech   = "no-speech"
	CodeAborted    = "aborted"
	CodeUnknown    = "unknown"
)

// User-facing capture failures.
const (
	MsgNotAllowed = "Permissão de microfone negada. Verifique as configurações do navegador."
	MsgNoSpeech   = "Não escutei nada. Tente novamente."
	MsgOther      = "Erro ao escutar. Tente novamente."

	MsgUnsupported = "Reconhecimento de voz não é suportado neste dispositivo."
)

// ErrUnsupported is the advisory for a bridge built without a recognizer.
var ErrUnsupported error = &client.APIError{
	Kind:    client.KindUnsupported,
	Op:      "start listening",
	Message: MsgUnsupported,
}

// pollInterval is how often Listen checks for the end of a capture.
const pollInterval = 20 * time.Millisecond

// ErrorMessage maps a recognizer error code to the message shown to the user.
func ErrorMessage(code string) string {
	switch code {
	case CodeNotAllowed:
		return MsgNotAllowed
	case CodeNoSpeech:
		return MsgNoSpeech
	default:
		return MsgOther
	}
}

// Sink receives the events of one capture attempt. A recognizer delivers at
// most one Result or Error, then End.
type Sink interface {
	Result(utterance string)
	Error(code string)
	End()
}

// Recognizer is a single-shot speech-to-text backend without interim results.
type Recognizer interface {
	// Start begins one capture; events may arrive on any goroutine, including
	// before Start returns.
	Start(lang string, sink Sink) error
	Stop()
}

// Capability is the recognition support detected at startup.
type Capability struct {
	rec Recognizer
}

// Supported wraps an available recognizer. A nil recognizer is Unsupported.
func Supported(r Recognizer) Capability { return Capability{rec: r} }

// NoRecognizer reports that no recognizer exists on this platform.
func NoRecognizer() Capability { return Capability{} }

// Available reports whether the capability carries a recognizer.
func (c Capability) Available() bool { return c.rec != nil }

// Bridge is the capture state machine.
type Bridge struct {
	mu         sync.Mutex
	rec        Recognizer
	lang       string
	state      State
	attempt    uint64
	transcript string
	errMsg     string
	onText     func(string)
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLang overrides DefaultLang.
func WithLang(lang string) BridgeOption {
	return func(b *Bridge) {
		if lang != "" {
			b.lang = lang
		}
	}
}

// WithTranscriptHandler registers fn to receive every recognized utterance.
func WithTranscriptHandler(fn func(string)) BridgeOption {
	return func(b *Bridge) { b.onText = fn }
}

// NewBridge checks the capability once; without a recognizer the bridge stays Unsupported.
func NewBridge(c Capability, opts ...BridgeOption) *Bridge {
	b := &Bridge{rec: c.rec, lang: DefaultLang, state: Idle}
	if c.rec == nil {
		b.state = Unsupported
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current capture state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Supported reports whether capture can ever start.
func (b *Bridge) Supported() bool { return b.State() != Unsupported }

// Transcript returns the last captured utterance.
func (b *Bridge) Transcript() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transcript
}

// ClearTranscript empties the captured text, e.g. after it was sent.
func (b *Bridge) ClearTranscript() {
	b.mu.Lock()
	b.transcript = ""
	b.mu.Unlock()
}

// Err returns the last capture failure message, empty when none.
func (b *Bridge) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// Check returns ErrUnsupported when capture can never start.
func (b *Bridge) Check() error {
	if !b.Supported() {
		return ErrUnsupported
	}
	return nil
}

// Listen runs one capture to completion and returns the utterance. It fails
// with ErrUnsupported without a recognizer, and with the capture failure
// message when recognition fails. Cancelling ctx stops the capture.
func (b *Bridge) Listen(ctx context.Context) (string, error) {
	if err := b.Check(); err != nil {
		return "", err
	}
	b.StartListening()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for b.State() == Listening {
		select {
		case <-ctx.Done():
			b.StopListening()
			return "", ctx.Err()
		case <-tick.C:
		}
	}
	if msg := b.Err(); msg != "" {
		return "", errors.New(msg)
	}
	return b.Transcript(), nil
}

// StartListening moves Idle to Listening and starts one capture.
// It is a no-op while Listening or Unsupported. A start failure is logged and
// the bridge returns to Idle.
func (b *Bridge) StartListening() {
	b.mu.Lock()
	if b.state != Idle {
		b.mu.Unlock()
		return
	}
	b.state = Listening
	b.transcript = ""
	b.errMsg = ""
	b.attempt++
	sink := &attemptSink{b: b, id: b.attempt}
	rec, lang := b.rec, b.lang
	b.mu.Unlock()

	if err := rec.Start(lang, sink); err != nil {
		log.Warn().Err(err).Msg("speech recognition start failed")
		b.mu.Lock()
		if b.attempt == sink.id && b.state == Listening {
			b.state = Idle
		}
		b.mu.Unlock()
	}
}

// StopListening asks the recognizer to stop and returns to Idle. Safe from Idle.
func (b *Bridge) StopListening() {
	b.mu.Lock()
	if b.state == Unsupported {
		b.mu.Unlock()
		return
	}
	wasListening := b.state == Listening
	b.state = Idle
	rec := b.rec
	b.mu.Unlock()

	if wasListening {
		rec.Stop()
	}
}

func (b *Bridge) result(id uint64, utterance string) {
	b.mu.Lock()
	if id != b.attempt || b.state == Unsupported {
		b.mu.Unlock()
		return
	}
	b.state = Idle
	b.transcript = utterance
	fn := b.onText
	b.mu.Unlock()

	if fn != nil {
		fn(utterance)
	}
}

func (b *Bridge) fail(id uint64, code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id != b.attempt || b.state == Unsupported {
		return
	}
	log.Debug().Str("code", code).Msg("speech recognition error")
	b.state = Idle
	b.errMsg = ErrorMessage(code)
}

func (b *Bridge) end(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id == b.attempt && b.state == Listening {
		b.state = Idle
	}
}

// attemptSink binds events to the capture attempt that produced them so a
// late event from an older attempt is dropped.
type attemptSink struct {
	b  *Bridge
	id uint64
}

func (s *attemptSink) Result(utterance string) { s.b.result(s.id, utterance) }
func (s *attemptSink) Error(code string)       { s.b.fail(s.id, code) }
func (s *attemptSink) End()                    { s.b.end(s.id) }
