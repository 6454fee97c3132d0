package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resource struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Filename  string         `gorm:"type:varchar(255);not null"`
	CharCount int            `gorm:"default:0"`
	Status    string         `gorm:"type:varchar(32);default:'pending'"`
	IndexedAt *time.Time
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Resource) TableName() string {
	return "resources"
}
