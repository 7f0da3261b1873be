package voice

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSink struct {
	mu     sync.Mutex
	result string
	code   string
	ended  chan struct{}
}

func newChanSink() *chanSink { return &chanSink{ended: make(chan struct{})} }

func (s *chanSink) Result(u string) { s.mu.Lock(); s.result = u; s.mu.Unlock() }
func (s *chanSink) Error(c string)  { s.mu.Lock(); s.code = c; s.mu.Unlock() }
func (s *chanSink) End()            { close(s.ended) }

func (s *chanSink) wait(t *testing.T) (string, string) {
	t.Helper()
	select {
	case <-s.ended:
	case <-time.After(5 * time.Second):
		t.Fatal("recognizer did not end")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.code
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX commands")
	}
}

func writeScript(t *testing.T, body string, mode os.FileMode) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "stt.sh")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), mode))
	return p
}

func TestCommandRecognizer_Result(t *testing.T) {
	skipOnWindows(t)
	r := NewCommandRecognizer("echo  lembrar   do remédio")
	require.NotNil(t, r)
	s := newChanSink()
	require.NoError(t, r.Start(DefaultLang, s))
	text, code := s.wait(t)
	assert.Equal(t, "lembrar do remédio", text)
	assert.Empty(t, code)
}

func TestCommandRecognizer_EmptyOutputIsNoSpeech(t *testing.T) {
	skipOnWindows(t)
	s := newChanSink()
	require.NoError(t, NewCommandRecognizer("true").Start(DefaultLang, s))
	_, code := s.wait(t)
	assert.Equal(t, CodeNoSpeech, code)
}

func TestCommandRecognizer_PermissionExitIsNotAllowed(t *testing.T) {
	skipOnWindows(t)
	s := newChanSink()
	require.NoError(t, NewCommandRecognizer(writeScript(t, "exit 126", 0o755)).Start(DefaultLang, s))
	_, code := s.wait(t)
	assert.Equal(t, CodeNotAllowed, code)
}

func TestCommandRecognizer_NotExecutableIsNotAllowed(t *testing.T) {
	skipOnWindows(t)
	if os.Geteuid() == 0 {
		t.Skip("root may execute files without the exec bit")
	}
	s := newChanSink()
	require.NoError(t, NewCommandRecognizer(writeScript(t, "echo oi", 0o644)).Start(DefaultLang, s))
	_, code := s.wait(t)
	assert.Equal(t, CodeNotAllowed, code)
}

func TestCommandRecognizer_LangIsExported(t *testing.T) {
	skipOnWindows(t)
	s := newChanSink()
	script := writeScript(t, "echo \"$"+LangEnv+"\"", 0o755)
	require.NoError(t, NewCommandRecognizer(script).Start("pt-BR", s))
	text, _ := s.wait(t)
	assert.Equal(t, "pt-BR", text)
}

func TestCommandRecognizer_StopEndsWithoutEvent(t *testing.T) {
	skipOnWindows(t)
	r := NewCommandRecognizer("sleep 30")
	s := newChanSink()
	require.NoError(t, r.Start(DefaultLang, s))
	r.Stop()
	text, code := s.wait(t)
	assert.Empty(t, text)
	assert.Empty(t, code)
}

func TestCommandRecognizer_StartRightAfterStop(t *testing.T) {
	skipOnWindows(t)
	r := NewCommandRecognizer("sleep 30")
	first := newChanSink()
	require.NoError(t, r.Start(DefaultLang, first))
	r.Stop()
	second := newChanSink()
	require.NoError(t, r.Start(DefaultLang, second))
	first.wait(t)

	// the first run ending must not release the second one
	require.Error(t, r.Start(DefaultLang, newChanSink()))
	r.Stop()
	second.wait(t)
}

func TestBridge_ListenAgainRightAfterStop(t *testing.T) {
	skipOnWindows(t)
	b := NewBridge(CommandCapability("sleep 30"))
	b.StartListening()
	require.Equal(t, Listening, b.State())
	b.StopListening()
	b.StartListening()
	assert.Equal(t, Listening, b.State())
	b.StopListening()
}

func TestCommandCapability(t *testing.T) {
	assert.False(t, CommandCapability("").Available())
	assert.False(t, CommandCapability("   ").Available())
	assert.True(t, CommandCapability("whisper-cli").Available())
	assert.Nil(t, NewCommandSynthesizer("").Synth())
}

func TestCommandSynthesizer_CancelKills(t *testing.T) {
	skipOnWindows(t)
	s := NewCommandSynthesizer("sleep 30")
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Speak(ctx, "olá", DefaultLang) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("speak did not return after cancel")
	}
}

func TestCommandSynthesizer_ReadsStdin(t *testing.T) {
	skipOnWindows(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	script := writeScript(t, "cat > "+out, 0o755)
	require.NoError(t, NewCommandSynthesizer(script).Speak(context.Background(), "Bom dia", DefaultLang))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Bom dia", string(b))
}
