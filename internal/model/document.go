package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentStatus — состояние подписания. Переход только PENDING -> SIGNED.
type DocumentStatus string

const (
	StatusPending DocumentStatus = "PENDING"
	StatusSigned  DocumentStatus = "SIGNED"
)

// Document — загруженный одностраничный PDF и состояние его подписи.
// SignatureURL и SignaturePosition заполнены только у SIGNED.
type Document struct {
	ID      string         `gorm:"primaryKey;type:uuid" json:"id"`
	Name    string         `gorm:"not null" json:"name"`
	FileKey string         `gorm:"uniqueIndex;not null" json:"fileKey"`
	Status  DocumentStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`

	SignatureURL      string         `json:"signatureUrl,omitempty"`
	SignaturePosition datatypes.JSON `json:"signaturePosition,omitempty"`

	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (d *Document) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// SignaturePosition — координаты подписи в процентах от размеров страницы.
type SignaturePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// JSON сериализует позицию для колонки signature_position.
func (p SignaturePosition) JSON() datatypes.JSON {
	b, _ := json.Marshal(p)
	return datatypes.JSON(b)
}

// Position разбирает сохранённую позицию; ok=false у неподписанного документа.
func (d *Document) Position() (SignaturePosition, bool) {
	var p SignaturePosition
	if len(d.SignaturePosition) == 0 {
		return p, false
	}
	if err := json.Unmarshal(d.SignaturePosition, &p); err != nil {
		return p, false
	}
	return p, true
}
