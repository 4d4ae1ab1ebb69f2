package handlers

import (
	"GophSign/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const (
	msgUnauthorized = "Não autorizado"
	msgInternal     = "Erro interno do servidor"
	msgTooLarge     = "Arquivo muito grande"
)

// errorResponses сопоставляет ошибки сервиса со статусом и текстом для клиента.
var errorResponses = []struct {
	err    error
	status int
	msg    string
}{
	{service.ErrUnauthenticated, http.StatusUnauthorized, msgUnauthorized},
	{service.ErrForbidden, http.StatusForbidden, msgUnauthorized},
	{service.ErrNotFound, http.StatusNotFound, "Documento não encontrado"},
	{service.ErrUserNotFound, http.StatusNotFound, "Usuário não encontrado"},

	{service.ErrMissingFile, http.StatusBadRequest, "Nenhum arquivo enviado"},
	{service.ErrMissingName, http.StatusBadRequest, "Nome do documento é obrigatório"},
	{service.ErrUnsupportedType, http.StatusBadRequest, "Apenas arquivos PDF são permitidos"},
	{service.ErrInvalidPDF, http.StatusBadRequest, "Arquivo PDF inválido"},

	{service.ErrIncompletePayload, http.StatusBadRequest, "Dados da assinatura incompletos"},
	{service.ErrInvalidPosition, http.StatusBadRequest, "Posição da assinatura inválida"},
	{service.ErrInvalidSignature, http.StatusBadRequest, "Imagem da assinatura inválida"},
	{service.ErrAlreadySigned, http.StatusBadRequest, "Documento já está assinado"},

	{service.ErrMissingFields, http.StatusBadRequest, "Dados incompletos"},
	{service.ErrEmailTaken, http.StatusBadRequest, "Email já cadastrado"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Email ou senha inválidos"},
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError отвечает по таблице errorResponses. Неизвестные ошибки логируются
// и уходят клиенту как 500 с fallback-текстом, без деталей.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error, fallback string) {
	var pce *service.PageCountError
	if errors.As(err, &pce) {
		writeMessage(w, http.StatusBadRequest, pce.Message())
		return
	}
	for _, e := range errorResponses {
		if errors.Is(err, e.err) {
			writeMessage(w, e.status, e.msg)
			return
		}
	}
	logger.Errorw(op+": service error", "error", err)
	writeMessage(w, http.StatusInternalServerError, fallback)
}
