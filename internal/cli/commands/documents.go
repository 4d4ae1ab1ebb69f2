package commands

import (
	"GophSign/internal/config"
	"GophSign/internal/model"
	"context"
	"fmt"
	"net/url"
	"text/tabwriter"
	"time"
)

func documentPath(id string) string {
	return "/documents/" + url.PathEscape(id)
}

func printDocument(d *model.Document) {
	fmt.Fprintf(Out, "ID:       %s\n", d.ID)
	fmt.Fprintf(Out, "Name:     %s\n", d.Name)
	fmt.Fprintf(Out, "Status:   %s\n", d.Status)
	fmt.Fprintf(Out, "File:     %s\n", d.FileKey)
	fmt.Fprintf(Out, "Created:  %s\n", d.CreatedAt.Local().Format(time.DateTime))
	if pos, ok := d.Position(); ok {
		fmt.Fprintf(Out, "Signed:   %s at x=%.2f%% y=%.2f%%\n", d.SignatureURL, pos.X, pos.Y)
	}
}

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List your documents, newest first" }
func (listCmd) Usage() string       { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var docs []model.Document
	if err := newClient(cfg).GetJSON(ctx, "/documents", &docs); err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(Out, "No documents")
		return nil
	}
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCREATED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Status, d.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "Show one document" }
func (showCmd) Usage() string       { return "show <id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var out struct {
		Document *model.Document `json:"document"`
	}
	if err := newClient(cfg).GetJSON(ctx, documentPath(args[0]), &out); err != nil {
		return err
	}
	if out.Document == nil {
		return fmt.Errorf("empty document response")
	}
	printDocument(out.Document)
	return nil
}

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Delete a document and its files" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := newClient(cfg).Delete(ctx, documentPath(args[0]), &out); err != nil {
		return err
	}
	fmt.Fprintln(Out, out.Message)
	return nil
}

func init() {
	RegisterCmd(listCmd{})
	RegisterCmd(showCmd{})
	RegisterCmd(deleteCmd{})
}
