package adapters

import (
	"time"

	"aurora_backend/internal/feature/memo/domain/entity"
)

// MemoModel is the GORM model for the memos table.
type MemoModel struct {
	ID         string            `gorm:"primaryKey;size:64"`
	CompanyID  string            `gorm:"index;size:128;not null"`
	Title      string            `gorm:"size:255;not null"`
	Summary    string            `gorm:"type:text"`
	Claims     []entity.Claim    `gorm:"serializer:json;type:text"`
	Provenance entity.Provenance `gorm:"serializer:json;type:text"`
	Source     string            `gorm:"size:16;not null"`
	CreatedAt  time.Time         `gorm:"not null"`
	UpdatedAt  time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (MemoModel) TableName() string {
	return "memos"
}

// ToEntity converts the GORM model to a domain entity.
func (m *MemoModel) ToEntity() *entity.Memo {
	claims := m.Claims
	if claims == nil {
		claims = []entity.Claim{}
	}
	return &entity.Memo{
		ID:         m.ID,
		CompanyID:  m.CompanyID,
		Title:      m.Title,
		Summary:    m.Summary,
		Claims:     claims,
		Provenance: m.Provenance,
		Source:     m.Source,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// MemoModelFromEntity converts a domain entity to a GORM model.
func MemoModelFromEntity(m *entity.Memo) *MemoModel {
	return &MemoModel{
		ID:         m.ID,
		CompanyID:  m.CompanyID,
		Title:      m.Title,
		Summary:    m.Summary,
		Claims:     m.Claims,
		Provenance: m.Provenance,
		Source:     m.Source,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
