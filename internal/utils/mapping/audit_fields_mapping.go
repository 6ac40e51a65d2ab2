package mapping

import (
	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelSyncFields converts domain sync metadata to its model shape.
func ToModelSyncFields(d domain.SyncFields) models.SyncFields {
	return models.SyncFields{
		SyncStatus:           string(d.SyncStatus),
		ExternalAccountingID: d.ExternalAccountingID,
		SyncAttemptedAt:      d.SyncAttemptedAt,
		SyncError:            d.SyncError,
	}
}

// ToDomainSyncFields converts model sync metadata to its domain shape.
func ToDomainSyncFields(m models.SyncFields) domain.SyncFields {
	return domain.SyncFields{
		SyncStatus:           domain.SyncStatus(m.SyncStatus),
		ExternalAccountingID: m.ExternalAccountingID,
		SyncAttemptedAt:      m.SyncAttemptedAt,
		SyncError:            m.SyncError,
	}
}
