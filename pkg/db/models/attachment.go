package models

import (
	"time"

	"github.com/poscatalog/catalog-backend/pkg/enums"
)

// Attachment is a file reference owned by exactly one entity, identified by
// the (owner_kind, owner_id) pair rather than an open-ended dynamic relation.
type Attachment struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerKind enums.OwnerKind `gorm:"column:owner_kind;not null;index:idx_attachments_owner"`
	OwnerID   int64           `gorm:"column:owner_id;not null;index:idx_attachments_owner"`
	Path      string          `gorm:"column:path;not null"`
	Label     string          `gorm:"column:label;not null;default:''"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
