package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/backendtest"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/voice"
)

type harness struct {
	t       *testing.T
	dataDir string
}

func newHarness(t *testing.T) (*harness, *backendtest.Backend) {
	backend := backendtest.New("maria")
	t.Cleanup(backend.Close)
	t.Setenv("GUARDIAO_API_URL", backend.URL)
	t.Setenv("GUARDIAO_DATA_DIR", "")
	return &harness{t: t, dataDir: t.TempDir()}, backend
}

// run executes one invocation with a fresh root, as a separate process would.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	out := &strings.Builder{}
	root.SetOut(out)
	root.SetErr(&strings.Builder{})
	root.SetArgs(append([]string{"--data-dir", h.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "guardiao %s", strings.Join(args, " "))
	return out
}

func TestCLI_SessionAndNavigation(t *testing.T) {
	h, backend := newHarness(t)

	assert.Equal(t, "Não autenticado.\n", h.mustRun("whoami"))
	assert.Equal(t, "/lembretes -> /login\n", h.mustRun("navigate", "/lembretes"))

	_, err := h.run("lembretes", "list")
	require.Error(t, err)
	assert.Equal(t, "Usuário não autenticado.", err.Error())
	assert.Empty(t, backend.Requests(), "no request without a session")

	_, err = h.run("login", "-u", "maria")
	require.EqualError(t, err, "Por favor, preencha usuário e senha.")

	_, err = h.run("login", "-u", "maria", "-p", "errada")
	require.EqualError(t, err, "Credenciais inválidas.")

	assert.Equal(t, "Olá, maria!\n", h.mustRun("login", "-u", "maria", "-p", backendtest.Password))
	assert.Equal(t, "maria (maria)\n", h.mustRun("whoami"))
	assert.Equal(t, "/lembretes (reminders)\n", h.mustRun("navigate", "/lembretes/"))
	assert.Equal(t, "/login -> /dashboard\n", h.mustRun("navigate", "/login"))

	assert.Equal(t, "Sessão encerrada.\n", h.mustRun("logout"))
	assert.Equal(t, "Não autenticado.\n", h.mustRun("whoami"))
}

func TestCLI_RegisterKeepsDisplayName(t *testing.T) {
	h, _ := newHarness(t)

	_, err := h.run("register", "--username", "jose", "--password", "a", "--confirm-password", "b",
		"--full-name", "José Silva", "--birth-date", "1950-01-02")
	require.EqualError(t, err, "As senhas não conferem.")

	h.mustRun("register", "--username", "jose", "--email", "j@x.com", "--password", backendtest.Password,
		"--full-name", "José Silva", "--birth-date", "1950-01-02")
	assert.Equal(t, "Não autenticado.\n", h.mustRun("whoami"), "register does not log in")

	assert.Equal(t, "Olá, José!\n", h.mustRun("login", "-u", "jose", "-p", backendtest.Password))
}

func TestCLI_RemindersDiaryContactsAssistant(t *testing.T) {
	h, backend := newHarness(t)
	h.mustRun("login", "-u", "maria", "-p", backendtest.Password)

	out := h.mustRun("lembretes", "new", "--date", "2024-11-05", "--time", "08:00", "--title", "Tomar remédio")
	assert.Contains(t, out, "08:00  [ ] Tomar remédio (medicamento)")
	require.Len(t, backend.Reminders(), 1)
	assert.Equal(t, "2024-11-05T08:00:00", backend.Reminders()[0]["data_hora"])

	out = h.mustRun("lembretes", "list", "--date", "2024-11-04", "--offset", "1")
	assert.Equal(t, "05/11/2024\n#1  08:00  [ ] Tomar remédio (medicamento)\n", out)
	assert.Contains(t, h.mustRun("lembretes", "list", "--date", "2024-11-06"), "Nenhum lembrete para este dia.")

	assert.Contains(t, h.mustRun("lembretes", "edit", "1", "--time", "09:30"), "09:30  [ ] Tomar remédio")
	assert.Contains(t, h.mustRun("lembretes", "done", "1"), "[x] Tomar remédio")
	assert.Equal(t, true, backend.Reminders()[0]["concluido"])

	_, err := h.run("lembretes", "new", "--date", "2024-11-05", "--time", "10:00")
	require.EqualError(t, err, "Por favor, preencha o título do lembrete.")

	h.mustRun("lembretes", "delete", "1")
	assert.Empty(t, backend.Reminders())

	_, err = h.run("diario", "new")
	require.EqualError(t, err, "Por favor, escreva sua anotação.")
	photo := filepath.Join(t.TempDir(), "praia.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("JPEG"), 0o600))
	h.mustRun("diario", "new", "--text", "Passeio", "--photo", photo)
	assert.Contains(t, h.mustRun("diario", "list"), "Passeio  [foto /media/praia.jpg]")

	h.mustRun("contatos", "new", "--name", "Ana", "--phone", "5199", "--emergency", "--relation", "filha")
	h.mustRun("contatos", "new", "--name", "Pedro", "--phone", "5188")
	out = h.mustRun("contatos", "list", "--emergency")
	assert.Contains(t, out, "Ana  5199  [emergência]")
	assert.NotContains(t, out, "Pedro")

	assert.Equal(t, "Assistente: Você disse: bom dia\n", h.mustRun("assistente", "ask", "bom", "dia"))
	assert.Equal(t, "Você: bom dia\nAssistente: Você disse: bom dia\n", h.mustRun("assistente", "history"))
}

func TestCLI_ListenSendsTranscript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX commands")
	}
	h, _ := newHarness(t)
	h.mustRun("login", "-u", "maria", "-p", backendtest.Password)

	t.Setenv("GUARDIAO_STT_COMMAND", "")
	_, err := h.run("assistente", "listen")
	require.Error(t, err)
	assert.True(t, client.IsKind(err, client.KindUnsupported))
	assert.Equal(t, voice.MsgUnsupported, client.Message(err, ""))

	t.Setenv("GUARDIAO_STT_COMMAND", "echo que dia é hoje")
	out := h.mustRun("assistente", "listen")
	assert.Equal(t, "Você disse: que dia é hoje\nAssistente: Você disse: que dia é hoje\n", out)
}
