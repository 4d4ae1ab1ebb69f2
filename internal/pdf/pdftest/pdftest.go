// Package pdftest генерирует PDF и PNG для тестов загрузки и подписи.
package pdftest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
)

// PDF собирает документ из pages страниц.
func PDF(tb testing.TB, pages int) []byte {
	tb.Helper()
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		Build()
	m := maroto.New(cfg)
	for i := 1; i <= pages; i++ {
		m.AddPages(page.New().Add(text.NewRow(10, fmt.Sprintf("Página %d", i))))
	}
	doc, err := m.Generate()
	if err != nil {
		tb.Fatalf("generate pdf: %v", err)
	}
	return doc.GetBytes()
}

// SignaturePNG рисует маленькую «подпись» — диагональную линию.
func SignaturePNG(tb testing.TB) []byte {
	tb.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for x := 0; x < 32; x++ {
		img.Set(x, x/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tb.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// SignatureDataURL — то же изображение в виде data URL, как его отдаёт canvas.
func SignatureDataURL(tb testing.TB) string {
	tb.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(SignaturePNG(tb))
}
