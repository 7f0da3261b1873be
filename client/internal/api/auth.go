package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	apierr "github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/errors"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

// Register creates an account. The response may already carry a token.
func Register(ctx context.Context, c Conn, req types.RegisterRequest) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, call{
		resource: "auth",
		op:       "register",
		method:   http.MethodPost,
		path:     "/api/auth/register/",
		json:     req,
		fallback: "Erro ao registrar",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token and profile fields.
func Login(ctx context.Context, c Conn, req types.LoginRequest) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, call{
		resource: "auth",
		op:       "login",
		method:   http.MethodPost,
		path:     "/api/auth/login/",
		json:     req,
		fallback: "Usuário ou senha inválidos",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the current token on the backend. It is best effort: without a
// token it does nothing, and a rejected request is logged rather than returned.
// Transport failures are still returned so the caller can log them.
func Logout(ctx context.Context, c Conn) error {
	err := c.do(ctx, call{
		resource: "auth",
		op:       "logout",
		method:   http.MethodPost,
		path:     "/api/auth/logout/",
		guarded:  true,
		fallback: "Erro ao fazer logout.",
	}, nil)
	switch {
	case err == nil:
		return nil
	case apierr.IsKind(err, apierr.KindUnauthenticated):
		return nil
	case apierr.IsKind(err, apierr.KindHTTP):
		log.Error().Err(err).Msg("backend logout failed")
		return nil
	default:
		return err
	}
}
