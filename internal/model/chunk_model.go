package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chunk struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResourceId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChunkIndex  int            `gorm:"default:0"` // 0-based index for ordering
	StartPos    int            `gorm:"default:0"`
	EndPos      int            `gorm:"default:0"`
	Content     string         `gorm:"type:text"`
	EmbedStatus string         `gorm:"type:varchar(32);default:'pending'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Chunk) TableName() string {
	return "chunks"
}
