package service

import (
	"GophSign/internal/model"
	"GophSign/internal/pdf"
	"GophSign/internal/repo"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlobStore — хранилище файлов документов и подписей.
type BlobStore interface {
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Open(ctx context.Context, key string) (io.ReadSeekCloser, error)
	URL(key string) string
}

// PageCounter считает страницы PDF.
type PageCounter interface {
	PageCount(data []byte) (int, error)
}

// DocumentService — жизненный цикл документа: загрузка, подпись, чтение, удаление.
type DocumentService struct {
	docs   repo.DocumentRepository
	users  repo.UserRepository
	blobs  BlobStore
	pages  PageCounter
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewDocumentService(
	docs repo.DocumentRepository,
	users repo.UserRepository,
	blobs BlobStore,
	pages PageCounter,
	logger *zap.SugaredLogger,
) *DocumentService {
	return &DocumentService{
		docs:   docs,
		users:  users,
		blobs:  blobs,
		pages:  pages,
		logger: logger,
		now:    time.Now,
	}
}

// Upload — файл из multipart-формы. nil означает, что файл не прислан.
type Upload struct {
	Filename string
	Data     []byte
}

// Create проверяет загрузку и создаёт документ в статусе PENDING.
// Проверки идут строго по порядку, первая неуспешная определяет ошибку.
// Если ошибка случилась после записи файла, blob остаётся сиротой.
func (s *DocumentService) Create(ctx context.Context, userID, name string, file *Upload) (*model.Document, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if file == nil {
		return nil, ErrMissingFile
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return nil, ErrUnsupportedType
	}

	pages, err := s.pages.PageCount(file.Data)
	if err != nil {
		if errors.Is(err, pdf.ErrMalformed) {
			return nil, ErrInvalidPDF
		}
		return nil, fmt.Errorf("count pages: %w", err)
	}
	if pages < 1 {
		return nil, ErrInvalidPDF
	}
	if pages > 1 {
		return nil, &PageCountError{Pages: pages}
	}

	key := s.fileKey(file.Filename)
	if err := s.blobs.Write(ctx, key, file.Data); err != nil {
		return nil, fmt.Errorf("store pdf: %w", err)
	}

	owner, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && owner == nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	doc := &model.Document{
		Name:    name,
		FileKey: key,
		UserID:  owner.ID,
		Status:  model.StatusPending,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// fileKey — {время создания}-{исходное имя файла}.
func (s *DocumentService) fileKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	return fmt.Sprintf("%d-%s", s.now().UnixNano(), base)
}

// List возвращает документы пользователя, новые первыми.
func (s *DocumentService) List(ctx context.Context, userID string) ([]model.Document, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	docs, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Get возвращает документ владельцу.
func (s *DocumentService) Get(ctx context.Context, userID, id string) (*model.Document, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.owned(ctx, userID, id)
}

// owned ищет документ и проверяет владельца. id не в формате UUID — ErrNotFound без запроса к БД.
func (s *DocumentService) owned(ctx context.Context, userID, id string) (*model.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	doc, err := s.docs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && doc == nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.UserID != userID {
		return nil, ErrForbidden
	}
	return doc, nil
}

// Position — координаты из запроса; nil поле означает «не прислано».
type Position struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// SignRequest — тело запроса подписи.
type SignRequest struct {
	SignatureImg string    `json:"signatureImg"`
	Position     *Position `json:"position"`
}

var dataURLPrefix = regexp.MustCompile(`^data:[^,]*;base64,`)

// validate проверяет полноту запроса и декодирует PNG.
// x или y, равные ровно 0, считаются отсутствующими.
func (r SignRequest) validate() (model.SignaturePosition, []byte, error) {
	var pos model.SignaturePosition
	if r.SignatureImg == "" || r.Position == nil ||
		r.Position.X == nil || r.Position.Y == nil ||
		*r.Position.X == 0 || *r.Position.Y == 0 {
		return pos, nil, ErrIncompletePayload
	}
	pos = model.SignaturePosition{X: *r.Position.X, Y: *r.Position.Y}
	if pos.X < 0 || pos.X > 100 || pos.Y < 0 || pos.Y > 100 {
		return pos, nil, ErrInvalidPosition
	}

	img, err := base64.StdEncoding.DecodeString(dataURLPrefix.ReplaceAllString(r.SignatureImg, ""))
	if err != nil {
		return pos, nil, ErrInvalidSignature
	}
	if _, err := png.DecodeConfig(bytes.NewReader(img)); err != nil {
		return pos, nil, ErrInvalidSignature
	}
	return pos, img, nil
}

// SignatureKey — ключ изображения подписи; стабилен для документа.
func SignatureKey(documentID string) string {
	return "signature-" + documentID + ".png"
}

// Sign переводит документ в SIGNED. Проверка статуса и обновление выполняются
// одним условным UPDATE в транзакции, файл подписи пишется до её фиксации.
func (s *DocumentService) Sign(ctx context.Context, userID, id string, req SignRequest) (*model.Document, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	pos, img, err := req.validate()
	if err != nil {
		return nil, err
	}

	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == model.StatusSigned {
		return nil, ErrAlreadySigned
	}

	key := SignatureKey(doc.ID)
	signed, err := s.docs.MarkSigned(ctx, doc.ID, s.blobs.URL(key), pos.JSON(), func() error {
		return s.blobs.Write(ctx, key, img)
	})
	if errors.Is(err, repo.ErrNotPending) {
		return nil, ErrAlreadySigned
	}
	if err != nil {
		return nil, fmt.Errorf("sign document: %w", err)
	}
	return signed, nil
}

// Delete удаляет документ и, по возможности, его файлы.
// Ошибки удаления файлов только логируются.
func (s *DocumentService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	doc, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, doc.FileKey); err != nil {
		s.logger.Warnw("Delete: failed to remove pdf", "document_id", doc.ID, "key", doc.FileKey, "error", err)
	}
	if doc.SignatureURL != "" {
		if err := s.blobs.Delete(ctx, SignatureKey(doc.ID)); err != nil {
			s.logger.Warnw("Delete: failed to remove signature", "document_id", doc.ID, "error", err)
		}
	}

	err = s.docs.Delete(ctx, doc.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// OpenBlob открывает PDF или подпись, если ими владеет пользователь.
func (s *DocumentService) OpenBlob(ctx context.Context, userID, key string) (io.ReadSeekCloser, *model.Document, error) {
	if userID == "" {
		return nil, nil, ErrUnauthenticated
	}
	doc, err := s.docs.FindByBlob(ctx, userID, key, s.blobs.URL(key))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && doc == nil) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find blob owner: %w", err)
	}
	f, err := s.blobs.Open(ctx, key)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return f, doc, nil
}
