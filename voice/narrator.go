package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// Synthesizer speaks text aloud. Speak blocks until playback ends or ctx is
// cancelled, and must stop audio promptly on cancellation.
type Synthesizer interface {
	Speak(ctx context.Context, text, lang string) error
}

// Narrator speaks assistant replies with at most one utterance audible.
type Narrator struct {
	synth Synthesizer
	lang  string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	auto   bool
	lastID string
}

// NewNarrator returns a Narrator. A nil synth makes narration silent.
func NewNarrator(synth Synthesizer, lang string) *Narrator {
	if lang == "" {
		lang = DefaultLang
	}
	return &Narrator{synth: synth, lang: lang}
}

// Speak cancels any in-flight utterance and starts text.
func (n *Narrator) Speak(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.speakLocked(text)
}

// Cancel stops the in-flight utterance, if any, and waits for it to end.
func (n *Narrator) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelLocked()
}

// Wait blocks until the current utterance ends.
func (n *Narrator) Wait() {
	n.mu.Lock()
	done := n.done
	n.mu.Unlock()
	if done != nil {
		<-done
	}
}

// AutoNarration reports whether new bot replies are spoken automatically.
func (n *Narrator) AutoNarration() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.auto
}

// SetAutoNarration toggles automatic narration. Enabling speaks latest right
// away when it is a bot message; disabling silences the current utterance.
func (n *Narrator) SetAutoNarration(enabled bool, latest *client.ChatMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.auto = enabled
	if !enabled {
		n.cancelLocked()
		return
	}
	if latest != nil && latest.Sender == client.SenderBot {
		n.lastID = latest.ID
		n.speakLocked(latest.Text)
	}
}

// AutoNarrate speaks msg when auto narration is on, msg is from the bot and
// msg has not been narrated already.
func (n *Narrator) AutoNarrate(msg client.ChatMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.auto || msg.Sender != client.SenderBot || msg.ID == n.lastID {
		return
	}
	n.lastID = msg.ID
	n.speakLocked(msg.Text)
}

func (n *Narrator) speakLocked(text string) {
	n.cancelLocked()
	if n.synth == nil || text == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	n.cancel, n.done = cancel, done

	synth, lang := n.synth, n.lang
	go func() {
		defer close(done)
		if err := synth.Speak(ctx, text, lang); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("narration failed")
		}
	}()
}

func (n *Narrator) cancelLocked() {
	if n.cancel == nil {
		return
	}
	n.cancel()
	<-n.done
	n.cancel, n.done = nil, nil
}
