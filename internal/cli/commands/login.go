package commands

import (
	"GophSign/internal/cli/api"
	"GophSign/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	email, password := args[0], args[1]

	resp, err := api.New(cfg.ServerURL, "").PostJSON(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, nil)
	if api.StatusOf(err) == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	if err != nil {
		return err
	}
	if err := api.PersistAuthFromResponse(resp, tokens); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := logins.SaveLogin(email); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "End session and forget auth cookie" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	// сервер может быть недоступен, локальный токен удаляем в любом случае
	_, srvErr := newClient(cfg).PostJSON(ctx, "/auth/logout", struct{}{}, nil)
	if err := tokens.Clear(); err != nil {
		return fmt.Errorf("clearing auth: %w", err)
	}
	if srvErr != nil {
		fmt.Fprintf(Out, "Logged out locally (server: %v)\n", srvErr)
		return nil
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
