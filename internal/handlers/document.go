package handlers

import (
	"GophSign/internal/config"
	"GophSign/internal/middleware"
	"GophSign/internal/model"
	"GophSign/internal/service"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultUploadMaxMB = 10
	multipartMemory    = 32 << 20

	msgListFailed = "Erro ao buscar documentos"
)

// DocumentHandler — загрузка, подпись, чтение и удаление документов.
type DocumentHandler struct {
	DocumentService *service.DocumentService
	Logger          *zap.SugaredLogger
	Config          *config.Config
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.SugaredLogger, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{DocumentService: documentService, Logger: logger, Config: cfg}
}

type documentResponse struct {
	Document *model.Document `json:"document"`
}

var errTooLarge = errors.New("upload too large")

// Create загрузка одностраничного PDF (multipart: file, name)
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	maxFile := h.maxUpload()
	r.Body = http.MaxBytesReader(w, r.Body, maxFile+1<<20)

	name, upload, err := readUpload(r, maxFile)
	if errors.Is(err, errTooLarge) {
		h.Logger.Warnw("Create: payload too large", "user_id", userID, "limit", maxFile)
		writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	if err != nil {
		// битая форма равносильна отсутствию файла
		h.Logger.Warnw("Create: invalid multipart form", "user_id", userID, "error", err)
	}

	doc, err := h.DocumentService.Create(r.Context(), userID, name, upload)
	if err != nil {
		writeError(w, h.Logger, "Create", err, msgInternal)
		return
	}
	h.Logger.Infow("document created", "document_id", doc.ID, "user_id", userID)
	writeJSON(w, http.StatusOK, doc)
}

// readUpload достаёт имя и файл из формы. Отсутствующий файл — nil без ошибки.
func readUpload(r *http.Request, maxFile int64) (string, *service.Upload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return "", nil, errTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return r.FormValue("name"), nil, nil
		}
		return "", nil, err
	}
	name := r.FormValue("name")

	file, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return name, nil, nil
	}
	if err != nil {
		return name, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFile+1))
	if err != nil {
		return name, nil, err
	}
	if int64(len(data)) > maxFile {
		return name, nil, errTooLarge
	}
	return name, &service.Upload{Filename: hdr.Filename, Data: data}, nil
}

func (h *DocumentHandler) maxUpload() int64 {
	mb := h.Config.UploadMaxSizeMB
	if mb <= 0 {
		mb = defaultUploadMaxMB
	}
	return int64(mb) << 20
}

// List документы пользователя, новые первыми
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	docs, err := h.DocumentService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "List", err, msgListFailed)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Get один документ владельца
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	doc, err := h.DocumentService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "Get", err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{Document: doc})
}

// Sign подпись документа: {signatureImg, position: {x, y}}
func (h *DocumentHandler) Sign(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	// изображение подписи ограничено тем же лимитом, что и загрузка PDF
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload()+1<<20)

	var req service.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.Logger.Warnw("Sign: payload too large", "document_id", id, "user_id", userID, "limit", mbe.Limit)
			writeMessage(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		// пустой запрос сервис отклонит как неполный
		h.Logger.Warnw("Sign: invalid request body", "document_id", id, "error", err)
		req = service.SignRequest{}
	}

	doc, err := h.DocumentService.Sign(r.Context(), userID, id, req)
	if err != nil {
		writeError(w, h.Logger, "Sign", err, msgInternal)
		return
	}
	h.Logger.Infow("document signed", "document_id", doc.ID, "user_id", userID)
	writeJSON(w, http.StatusOK, doc)
}

// Delete удаление документа вместе с файлами
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.DocumentService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.Logger, "Delete", err, msgInternal)
		return
	}
	h.Logger.Infow("document deleted", "document_id", id, "user_id", userID)
	writeMessage(w, http.StatusOK, "Documento excluído com sucesso")
}

// Blob отдаёт PDF или изображение подписи владельцу
func (h *DocumentHandler) Blob(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	key := chi.URLParam(r, "key")

	rc, doc, err := h.DocumentService.OpenBlob(r.Context(), userID, key)
	if err != nil {
		writeError(w, h.Logger, "Blob", err, msgInternal)
		return
	}
	defer rc.Close()

	w.Header().Set("Cache-Control", "private, no-cache")
	http.ServeContent(w, r, key, doc.UpdatedAt, rc)
}
