package views

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/session"
)

// Auth form messages.
const (
	MsgCredentialsRequired = "Por favor, preencha usuário e senha."
	MsgPasswordsDiffer     = "As senhas não conferem."
	MsgFullNameRequired    = "Por favor, preencha o nome completo."
	MsgBirthDateRequired   = "Por favor, informe a data de nascimento."
)

// LoginForm holds the login screen fields.
type LoginForm struct {
	Username string
	Password string
}

// Validate checks the required fields.
func (f LoginForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" || f.Password == "" {
		return client.NewValidationError("login", MsgCredentialsRequired)
	}
	return nil
}

// RegisterForm holds the sign-up screen fields. BirthDate is YYYY-MM-DD.
type RegisterForm struct {
	Username        string
	Email           string
	FullName        string
	BirthDate       string
	Password        string
	ConfirmPassword string
}

// Validate runs the sign-up checks in screen order.
func (f RegisterForm) Validate() error {
	const op = "register"
	if f.Password != f.ConfirmPassword {
		return client.NewValidationError(op, MsgPasswordsDiffer)
	}
	if strings.TrimSpace(f.FullName) == "" {
		return client.NewValidationError(op, MsgFullNameRequired)
	}
	if f.BirthDate == "" {
		return client.NewValidationError(op, MsgBirthDateRequired)
	}
	return nil
}

// Auth runs the login, sign-up and logout flows and keeps the session in step.
type Auth struct {
	status

	api     AuthAPI
	session *session.Session
}

// NewAuth binds the flows to a session.
func NewAuth(api AuthAPI, s *session.Session) *Auth {
	return &Auth{api: api, session: s}
}

// Login authenticates and stores the session. The returned identity is what the header shows.
func (a *Auth) Login(ctx context.Context, form LoginForm) (session.Identity, error) {
	if err := form.Validate(); err != nil {
		return session.Identity{}, a.set(err, "")
	}
	resp, err := a.api.Login(ctx, client.LoginRequest{Username: form.Username, Password: form.Password})
	if err != nil {
		return session.Identity{}, a.set(err, "Erro ao fazer login.")
	}
	username := resp.Username
	if username == "" {
		username = form.Username
	}
	if err := a.session.Login(ctx, resp.Token, username); err != nil {
		return session.Identity{}, a.set(err, "Erro ao fazer login.")
	}
	return a.session.Identity(ctx), a.set(nil, "")
}

// Register creates the account and remembers the display name. The user is
// not logged in; the next screen is the login.
func (a *Auth) Register(ctx context.Context, form RegisterForm) error {
	if err := form.Validate(); err != nil {
		return a.set(err, "")
	}
	_, err := a.api.Register(ctx, client.RegisterRequest{
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
		FullName:  form.FullName,
		BirthDate: form.BirthDate,
	})
	if err != nil {
		return a.set(err, "Erro ao registrar usuário.")
	}
	return a.set(a.session.Register(ctx, form.FullName), "Erro ao registrar usuário.")
}

// Logout revokes the token when possible and always clears the session.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("logout request failed")
	}
	return a.session.Logout(ctx)
}
