package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/enterprise-ats/internal/models"
)

// TimeToHireRow is one position's aggregate; AvgSeconds is the mean hire delay.
type TimeToHireRow struct {
	PositionApplied uuid.UUID
	AvgSeconds      float64
	Hires           int64
}

type ReportRepository interface {
	TimeToHire(ctx context.Context) ([]TimeToHireRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) TimeToHire(ctx context.Context) ([]TimeToHireRow, error) {
	var rows []TimeToHireRow
	err := r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Select("position_applied, " +
			"AVG(EXTRACT(EPOCH FROM (date_hired - date_applied)))::float8 AS avg_seconds, " +
			"COUNT(*) AS hires").
		Where("date_hired IS NOT NULL").
		Group("position_applied").
		Order("position_applied").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute time to hire: %w", err)
	}

	return rows, nil
}
