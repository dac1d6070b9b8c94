package auditlog

import (
	"log"

	auditlogrepo "github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/auditlog"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
)

type Auditlog struct {
	r *auditlogrepo.AuditLogRepository
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log persists an activity entry. It is fire-and-forget; callers usually run
// it in a goroutine and a failed write must never fail the request.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	if a == nil || a.r == nil {
		return
	}

	auditLog := item.CreateLogView()
	auditLog.Action = action

	err := a.r.PersistLog(auditLog, data)

	if err != nil {
		log.Println("Unable to create AuditLog entry for id ", auditLog.ResourceID)
		return
	}
}

func NewAuditLog(repository *auditlogrepo.AuditLogRepository) *Auditlog {
	return &Auditlog{r: repository}
}
