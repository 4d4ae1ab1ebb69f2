package service

import (
	"errors"
	"fmt"
)

// Ошибки сервисного слоя. Хендлеры сопоставляют их с HTTP-статусом и сообщением для клиента.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("document belongs to another user")
	ErrNotFound        = errors.New("document not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrMissingFile       = errors.New("no file uploaded")
	ErrMissingName       = errors.New("document name is required")
	ErrUnsupportedType   = errors.New("only .pdf files are allowed")
	ErrInvalidPDF        = errors.New("file is not a valid pdf")
	ErrPageCountExceeded = errors.New("page count exceeded")

	ErrIncompletePayload = errors.New("signature payload is incomplete")
	ErrInvalidPosition   = errors.New("signature position out of range")
	ErrInvalidSignature  = errors.New("signature image is not a base64 png")
	ErrAlreadySigned     = errors.New("document already signed")

	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// PageCountError — загруженный PDF содержит больше одной страницы.
// errors.Is(err, ErrPageCountExceeded) == true.
type PageCountError struct {
	Pages int
}

func (e *PageCountError) Error() string {
	return fmt.Sprintf("document has %d pages; only single-page documents are allowed", e.Pages)
}

// Message — текст для клиента.
func (e *PageCountError) Message() string {
	return fmt.Sprintf("O documento tem %d páginas. Apenas documentos com uma página são permitidos.", e.Pages)
}

func (e *PageCountError) Is(target error) bool {
	return target == ErrPageCountExceeded
}
