package services

import (
	"context"
	"log"
	"math"
	"time"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

type ReportService interface {
	TimeToHire(ctx context.Context) ([]models.TimeToHireEntry, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	cache      CacheService
}

func NewReportService(reportRepo repositories.ReportRepository, cache CacheService) ReportService {
	if cache == nil {
		cache = NewNoopCache()
	}
	return &reportService{reportRepo: reportRepo, cache: cache}
}

func (s *reportService) TimeToHire(ctx context.Context) ([]models.TimeToHireEntry, error) {
	var cached []models.TimeToHireEntry
	if hit, err := s.cache.GetJSON(ctx, cacheKeyTimeToHire, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.reportRepo.TimeToHire(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.TimeToHireEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.TimeToHireEntry{
			Position:      row.PositionApplied.String(),
			AvgTimeToHire: formatHireDuration(row.AvgSeconds),
			AvgDays:       math.Round(row.AvgSeconds/86400*100) / 100,
			Hires:         row.Hires,
		})
	}

	if err := s.cache.SetJSON(ctx, cacheKeyTimeToHire, out); err != nil {
		log.Printf("⚠️  Failed to cache time-to-hire report: %v\n", err)
	}
	return out, nil
}

func formatHireDuration(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}
