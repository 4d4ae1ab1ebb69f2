package commands

import (
	"GophSign/internal/config"
	"GophSign/internal/model"
	"context"
	"fmt"
	"net/url"
	"os"
)

type downloadCmd struct{}

func (downloadCmd) Name() string        { return "download" }
func (downloadCmd) Description() string { return "Save the PDF (or its signature image) to a file" }
func (downloadCmd) Usage() string       { return "download <id> <out-file> [signature]" }

func (downloadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 || (len(args) == 3 && args[2] != "signature") {
		return ErrUsage
	}
	c := newClient(cfg)

	var out struct {
		Document *model.Document `json:"document"`
	}
	if err := c.GetJSON(ctx, documentPath(args[0]), &out); err != nil {
		return err
	}
	if out.Document == nil {
		return fmt.Errorf("empty document response")
	}
	blobPath := "/uploads/" + url.PathEscape(out.Document.FileKey)
	if len(args) == 3 {
		if out.Document.SignatureURL == "" {
			return fmt.Errorf("document %s is not signed", out.Document.ID)
		}
		blobPath = out.Document.SignatureURL
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := c.Download(ctx, blobPath, f); err != nil {
		_ = f.Close()
		_ = os.Remove(args[1])
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved %s\n", args[1])
	return nil
}

func init() { RegisterCmd(downloadCmd{}) }
