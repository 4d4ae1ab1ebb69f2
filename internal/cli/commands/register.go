package commands

import (
	"GophSign/internal/cli/api"
	"GophSign/internal/config"
	"context"
	"fmt"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account" }
func (registerCmd) Usage() string       { return "register <email> <password> <name...>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	req := RegisterRequest{Email: args[0], Password: args[1], Name: strings.Join(args[2:], " ")}

	var out struct {
		Message string `json:"message"`
	}
	if _, err := api.New(cfg.ServerURL, "").PostJSON(ctx, "/auth/register", req, &out); err != nil {
		return err
	}
	fmt.Fprintln(Out, out.Message)
	fmt.Fprintf(Out, "Now run: login %s <password>\n", req.Email)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
