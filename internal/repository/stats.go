package repository

import (
	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"github.com/adflow-io/adflow-go/internal/domain/stats"
	"gorm.io/gorm"
)

// StatsRepo computes every statistic with grouped queries in the
// store; callers never reduce full row sets.
type StatsRepo interface {
	Overview() (stats.Overview, error)
	WithTx(tx *gorm.DB) StatsRepo
}

type DBStatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *DBStatsRepo {
	return &DBStatsRepo{db: db}
}

func (r *DBStatsRepo) countBy(column string) ([]stats.Bucket, error) {
	var buckets []stats.Bucket
	err := r.db.Model(&request.Request{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order(column).
		Scan(&buckets).Error
	return buckets, err
}

func (r *DBStatsRepo) Overview() (stats.Overview, error) {
	var overview stats.Overview

	if err := r.db.Model(&request.Request{}).Count(&overview.TotalRequests).Error; err != nil {
		return overview, err
	}
	if err := r.db.Model(&client.Client{}).Count(&overview.TotalClients).Error; err != nil {
		return overview, err
	}
	err := r.db.Model(&profile.Profile{}).
		Where("role IN ?", []profile.Role{profile.RoleOperator, profile.RoleAdmin}).
		Count(&overview.TotalOperators).Error
	if err != nil {
		return overview, err
	}

	if overview.ByStatus, err = r.countBy("status"); err != nil {
		return overview, err
	}
	if overview.ByType, err = r.countBy("request_type"); err != nil {
		return overview, err
	}
	if overview.ByPlatform, err = r.countBy("platform"); err != nil {
		return overview, err
	}
	if overview.ByPriority, err = r.countBy("priority"); err != nil {
		return overview, err
	}

	var completed int64
	err = r.db.Model(&request.Request{}).
		Where("status = ?", request.StatusCompleted).
		Count(&completed).Error
	if err != nil {
		return overview, err
	}
	if overview.TotalRequests > 0 {
		overview.CompletionRate = float64(completed) / float64(overview.TotalRequests)
	}

	err = r.db.Model(&request.Request{}).
		Where("completed_at IS NOT NULL").
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (completed_at - created_at)) / 3600), 0)").
		Scan(&overview.AvgCompletionHours).Error
	if err != nil {
		return overview, err
	}

	err = r.db.Table("requests r").
		Select(`r.operator_id AS operator_id,
			p.name AS operator_name,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE r.status IN ('pending', 'in_progress', 'on_hold')) AS open,
			COUNT(*) FILTER (WHERE r.status = 'completed') AS completed`).
		Joins("JOIN profiles p ON p.id = r.operator_id").
		Where("r.operator_id IS NOT NULL").
		Group("r.operator_id, p.name").
		Order("total desc").
		Scan(&overview.OperatorLoads).Error
	if err != nil {
		return overview, err
	}

	overview.Monthly, err = r.monthlySeries()
	if err != nil {
		return overview, err
	}

	return overview, nil
}

type monthCountRow struct {
	Month string
	Count int64
}

func (r *DBStatsRepo) monthlySeries() ([]stats.MonthlyPoint, error) {
	var created []monthCountRow
	err := r.db.Model(&request.Request{}).
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("month").
		Order("month").
		Scan(&created).Error
	if err != nil {
		return nil, err
	}

	var completed []monthCountRow
	err = r.db.Model(&request.Request{}).
		Where("completed_at IS NOT NULL").
		Select("to_char(completed_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("month").
		Order("month").
		Scan(&completed).Error
	if err != nil {
		return nil, err
	}

	completedMap := make(map[string]int64, len(completed))
	for _, row := range completed {
		completedMap[row.Month] = row.Count
	}

	points := make([]stats.MonthlyPoint, 0, len(created))
	seen := make(map[string]bool, len(created))
	for _, row := range created {
		points = append(points, stats.MonthlyPoint{
			Month:     row.Month,
			Created:   row.Count,
			Completed: completedMap[row.Month],
		})
		seen[row.Month] = true
	}
	// Months with completions but no new requests still get a point.
	for _, row := range completed {
		if !seen[row.Month] {
			points = append(points, stats.MonthlyPoint{Month: row.Month, Completed: row.Count})
		}
	}
	return points, nil
}

func (r *DBStatsRepo) WithTx(tx *gorm.DB) StatsRepo {
	return &DBStatsRepo{db: tx}
}
