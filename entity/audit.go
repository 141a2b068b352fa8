package entity

import "time"

type OperationKind int

const (
	OpInsert OperationKind = iota + 1
	OpUpdate
)

// Audit คือคอลัมน์ create/update ที่ทุก write path ต้องเติมเองผ่าน StampAudit
type Audit struct {
	CreatedAt time.Time `json:"createTime"`
	UpdatedAt time.Time `json:"updateTime"`
	CreatedBy uint      `json:"createUser"`
	UpdatedBy uint      `json:"updateUser"`
}

func (a *Audit) auditFields() *Audit { return a }

type Auditable interface {
	auditFields() *Audit
}

// StampAudit fills the audit columns of e for the given operation.
// Insert stamps both the create and the update pair; update only the latter.
func StampAudit(e Auditable, actorID uint, op OperationKind, now time.Time) {
	a := e.auditFields()
	switch op {
	case OpInsert:
		a.CreatedAt = now
		a.CreatedBy = actorID
		a.UpdatedAt = now
		a.UpdatedBy = actorID
	case OpUpdate:
		a.UpdatedAt = now
		a.UpdatedBy = actorID
	}
}

// AuditColumns is the column-map form of StampAudit(OpUpdate) for map based updates.
func AuditColumns(actorID uint, now time.Time) map[string]any {
	return map[string]any{
		"updated_at": now,
		"updated_by": actorID,
	}
}
