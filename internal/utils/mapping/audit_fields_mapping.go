package mapping

import (
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/SscSPs/permissioned_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     string(d.CreatedBy),
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: string(d.LastUpdatedBy),
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     domain.Principal(m.CreatedBy),
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: domain.Principal(m.LastUpdatedBy),
	}
}
