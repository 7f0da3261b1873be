// Package app wires the session, backend client, views and voice I/O from configuration.
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/guard"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/config"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/health"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/session"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/voice"
)

// App is one process's object graph.
type App struct {
	Config  *config.Config
	Session *session.Session
	Client  *client.Client
	Router  *guard.Router

	Auth      *views.Auth
	Reminders *views.ReminderBoard
	Diary     *views.DiaryBook
	Contacts  *views.ContactBook
	Assistant *views.Assistant

	Voice    *voice.Bridge
	Narrator *voice.Narrator

	sessionStore session.Store
	store        interface{ Close() error }
}

// New opens the session store under cfg.DataDir and builds everything on top.
func New(cfg *config.Config) (*App, error) {
	store, err := session.OpenSQLiteStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	a, err := NewWithStore(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	a.store = store
	return a, nil
}

// NewWithStore builds the graph over an existing store; the caller owns store.
func NewWithStore(cfg *config.Config, store session.Store) (*App, error) {
	sess := session.New(store)

	opts := []client.Option{client.WithHTTPTimeout(cfg.HTTPTimeout)}
	if cfg.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	c, err := client.New(cfg.APIURL, sess, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	narrator := voice.NewNarrator(voice.NewCommandSynthesizer(cfg.TTSCommand).Synth(), cfg.VoiceLang)
	assistant := views.NewAssistant(c, narrator)
	bridge := voice.NewBridge(
		voice.CommandCapability(cfg.STTCommand),
		voice.WithLang(cfg.VoiceLang),
		voice.WithTranscriptHandler(assistant.SetInput),
	)

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("voice", bridge.State().String()).
		Bool("narration", cfg.TTSCommand != "").
		Msg("application wired")

	return &App{
		Config:    cfg,
		Session:   sess,
		Client:    c,
		Router:    guard.New(sess),
		Auth:      views.NewAuth(c, sess),
		Reminders: views.NewReminderBoard(c),
		Diary:     views.NewDiaryBook(c),
		Contacts:  views.NewContactBook(c),
		Assistant: assistant,
		Voice:     bridge,
		Narrator:  narrator,

		sessionStore: store,
	}, nil
}

// HealthChecker watches the backend and, when it can be pinged, the session store.
func (a *App) HealthChecker(l zerolog.Logger) *health.Checker {
	h := health.NewChecker(l, 5*time.Second).
		Add("backend", health.Backend(&http.Client{Timeout: 5 * time.Second}, a.Config.APIURL))
	if p, ok := a.sessionStore.(health.Pinger); ok {
		h.Add("session-store", p)
	}
	return h
}

// Close silences narration, releases connections and closes the store it opened.
func (a *App) Close() error {
	a.Narrator.Cancel()
	a.Voice.StopListening()
	if err := a.Client.Close(); err != nil {
		log.Error().Err(err).Msg("error closing client")
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
