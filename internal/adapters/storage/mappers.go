package storage

import (
	"rgbdslam/internal/domain"
)

// scanModelToDomain converts a ScanModel (GORM) to domain.Scan
func scanModelToDomain(m ScanModel) domain.Scan {
	return domain.Scan{
		CreatedAt:    m.CreatedAt,
		LastOpenedAt: m.LastOpenedAt,
		Name:         m.Name,
		Nodes:        m.Nodes,
		Path:         m.Path,
		SizeBytes:    m.SizeBytes,
		UpdatedAt:    m.UpdatedAt,
	}
}

// domainToScanModel converts a domain.Scan to ScanModel (GORM)
func domainToScanModel(s domain.Scan) ScanModel {
	return ScanModel{
		CreatedAt:    s.CreatedAt,
		LastOpenedAt: s.LastOpenedAt,
		Name:         s.Name,
		Nodes:        s.Nodes,
		Path:         s.Path,
		SizeBytes:    s.SizeBytes,
		UpdatedAt:    s.UpdatedAt,
	}
}
