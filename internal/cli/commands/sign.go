package commands

import (
	"GophSign/internal/config"
	"GophSign/internal/model"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
)

type signPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SignRequest struct {
	SignatureImg string       `json:"signatureImg"`
	Position     signPosition `json:"position"`
}

type signCmd struct{}

func (signCmd) Name() string        { return "sign" }
func (signCmd) Description() string { return "Place a PNG signature at x%/y% of the page" }
func (signCmd) Usage() string       { return "sign <id> <signature.png> <x%> <y%>" }

func (signCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 4 {
		return ErrUsage
	}
	x, errX := strconv.ParseFloat(args[2], 64)
	y, errY := strconv.ParseFloat(args[3], 64)
	if errX != nil || errY != nil {
		return ErrUsage
	}
	img, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read signature: %w", err)
	}

	req := SignRequest{
		SignatureImg: "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
		Position:     signPosition{X: x, Y: y},
	}
	var doc model.Document
	if _, err := newClient(cfg).PostJSON(ctx, documentPath(args[0])+"/sign", req, &doc); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Document %s is %s\n", doc.ID, doc.Status)
	return nil
}

func init() { RegisterCmd(signCmd{}) }
