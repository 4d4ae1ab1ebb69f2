package commands

import (
	"GophSign/internal/config"
	"GophSign/internal/model"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Upload a single-page PDF" }
func (uploadCmd) Usage() string       { return "upload <file.pdf> [name...]" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	filename := filepath.Base(path)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	if len(args) > 1 {
		name = strings.Join(args[1:], " ")
	}

	var doc model.Document
	if err := newClient(cfg).Upload(ctx, "/documents", name, filename, data, &doc); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Uploaded %q as %s\n", doc.Name, doc.ID)
	return nil
}

func init() { RegisterCmd(uploadCmd{}) }
