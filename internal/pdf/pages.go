// Package pdf разбирает загруженные PDF-файлы.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrMalformed — файл не удалось разобрать как PDF.
var ErrMalformed = errors.New("malformed pdf")

var disableConfigDir sync.Once

// PageCounter считает страницы через pdfcpu.
type PageCounter struct{}

func NewPageCounter() *PageCounter {
	// pdfcpu по умолчанию пишет конфиг в пользовательский каталог — серверу это не нужно
	disableConfigDir.Do(api.DisableConfigDir)
	return &PageCounter{}
}

// PageCount возвращает число страниц документа.
func (PageCounter) PageCount(data []byte) (n int, err error) {
	if len(data) == 0 {
		return 0, ErrMalformed
	}
	// pdfcpu может паниковать на битых xref
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	n, err = api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return n, nil
}
