package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes a query to one learner's records. Every repository read
// and write goes through an explicit owner filter; the core never infers
// ownership implicitly.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByResourceID filters chunk-level records by their parent resource.
type ByResourceID struct {
	ResourceID uuid.UUID
}

func (s ByResourceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resource_id = ?", s.ResourceID)
}

// ByPlanID filters sessions by their parent plan.
type ByPlanID struct {
	PlanID uuid.UUID
}

func (s ByPlanID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan_id = ?", s.PlanID)
}
