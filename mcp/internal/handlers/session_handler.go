package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/guard"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/session"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

// SessionHandler exposes login, logout, whoami and navigate.
type SessionHandler struct {
	auth    *views.Auth
	session *session.Session
	router  *guard.Router
}

func NewSessionHandler(auth *views.Auth, s *session.Session, r *guard.Router) *SessionHandler {
	return &SessionHandler{auth: auth, session: s, router: r}
}

func (sh *SessionHandler) RegisterTools(s *server.MCPServer) error {
	login := mcp.NewTool("login",
		mcp.WithDescription("Log in to Guardião da Memória; the session is shared with the guardiao CLI"),
		mcp.WithString("username", mcp.Required(), mcp.Description("Account username")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Account password")),
	)
	logout := mcp.NewTool("logout",
		mcp.WithDescription("End the current session"),
	)
	whoami := mcp.NewTool("whoami",
		mcp.WithDescription("Report whether a session exists and the name shown to the user"),
	)
	navigate := mcp.NewTool("navigate",
		mcp.WithDescription("Resolve an app path (e.g. /lembretes) against the route guards; returns where the user lands"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Requested path")),
	)
	s.AddTool(login, sh.handleLogin)
	s.AddTool(logout, sh.handleLogout)
	s.AddTool(whoami, sh.handleWhoami)
	s.AddTool(navigate, sh.handleNavigate)
	return nil
}

func (sh *SessionHandler) handleLogin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, _ := req.RequireString("username")
	password, _ := req.RequireString("password")

	log.Debug().Str("username", username).Msg("login invoked")

	start := time.Now()
	id, err := sh.auth.Login(ctx, views.LoginForm{Username: username, Password: password})
	if err != nil {
		return toolError("login", err, time.Since(start)), nil
	}
	return jsonResult(map[string]any{"authenticated": true, "username": id.Username, "displayName": id.Shown()}), nil
}

func (sh *SessionHandler) handleLogout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := sh.auth.Logout(ctx); err != nil {
		return toolError("logout", err, time.Since(start)), nil
	}
	return jsonResult(map[string]any{"authenticated": false}), nil
}

func (sh *SessionHandler) handleWhoami(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := sh.session.Identity(ctx)
	return jsonResult(map[string]any{
		"authenticated": sh.session.Authenticated(ctx),
		"username":      id.Username,
		"displayName":   id.Shown(),
	}), nil
}

func (sh *SessionHandler) handleNavigate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, _ := req.RequireString("path")
	d := sh.router.Resolve(ctx, path)
	return jsonResult(map[string]any{"path": d.Path, "redirect": d.Redirect, "route": d.Route}), nil
}
