package commands

import (
	"GophSign/internal/cli/api"
	"GophSign/internal/config"
	"GophSign/internal/model"
	"context"
	"fmt"
	"net/http"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show current session" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var out struct {
		User *model.User `json:"user"`
	}
	err := newClient(cfg).GetJSON(ctx, "/auth/session", &out)
	if api.StatusOf(err) == http.StatusUnauthorized {
		fmt.Fprintln(Out, "Status: anonymous")
		return nil
	}
	if err != nil {
		return err
	}
	if out.User == nil {
		return fmt.Errorf("empty session response")
	}
	fmt.Fprintf(Out, "Status: logged in as %s (%s)\n", out.User.Email, out.User.Name)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
