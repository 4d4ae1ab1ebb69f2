package repo

import (
	"GophSign/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotPending — условное обновление не нашло документ в статусе PENDING.
var ErrNotPending = errors.New("document is not pending")

// DocumentRepository — доступ к записям документов.
// Проверка владельца делается в сервисе, чтобы различать «нет записи» и «чужая запись».
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	// ListByUser возвращает документы владельца, новые первыми.
	ListByUser(ctx context.Context, userID string) ([]model.Document, error)
	// FindByBlob ищет документ владельца, ссылающийся на blob как на файл или как на подпись.
	FindByBlob(ctx context.Context, userID, fileKey, signatureURL string) (*model.Document, error)
	// MarkSigned атомарно переводит PENDING -> SIGNED.
	// persist вызывается внутри транзакции после успешного условного UPDATE;
	// ошибка persist откатывает обновление.
	MarkSigned(ctx context.Context, id, signatureURL string, pos datatypes.JSON, persist func() error) (*model.Document, error)
	Delete(ctx context.Context, id string) error
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.Document) error {
	if doc.Status == "" {
		doc.Status = model.StatusPending
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) ListByUser(ctx context.Context, userID string) ([]model.Document, error) {
	docs := make([]model.Document, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) FindByBlob(ctx context.Context, userID, fileKey, signatureURL string) (*model.Document, error) {
	var d model.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (file_key = ? OR signature_url = ?)", userID, fileKey, signatureURL).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) MarkSigned(ctx context.Context, id, signatureURL string, pos datatypes.JSON, persist func() error) (*model.Document, error) {
	var out model.Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Document{}).
			Where("id = ? AND status = ?", id, model.StatusPending).
			Updates(map[string]any{
				"status":             model.StatusSigned,
				"signature_url":      signatureURL,
				"signature_position": pos,
				"updated_at":         time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		if persist != nil {
			if err := persist(); err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *documentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
