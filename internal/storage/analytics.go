// ABOUTME: Analytics aggregator over daily-log sets.
// ABOUTME: One point per logged entry; null reps/weight excluded per aggregate.
package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

// GetRepsAnalytics returns the per-day series for one exercise over an
// inclusive date range. When q.Tag is set, only entries whose selected
// tags contain it (case-insensitively) contribute points.
func (d *DB) GetRepsAnalytics(q models.AnalyticsQuery) (*models.ExerciseAnalytics, error) {
	exerciseID, err := validate.PositiveInt("Exercise ID", q.ExerciseID)
	if err != nil {
		return nil, err
	}
	startDate, err := validate.RequiredText("Start date", q.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := validate.RequiredText("End date", q.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`
		SELECT dl.id, dl.performed_on, dl.selected_tags
		FROM daily_logs dl
		WHERE dl.exercise_id = ?
		  AND dl.performed_on BETWEEN ? AND ?
		ORDER BY dl.performed_on ASC, dl.id ASC`,
		exerciseID, startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("query analytics logs: %w", err)
	}
	defer rows.Close()

	type logRow struct {
		id   int64
		date string
	}
	wantTag := strings.ToLower(strings.TrimSpace(q.Tag))
	logs := []logRow{}
	for rows.Next() {
		var (
			row  logRow
			tags string
		)
		if err := rows.Scan(&row.id, &row.date, &tags); err != nil {
			return nil, fmt.Errorf("scan analytics log: %w", err)
		}
		if wantTag != "" && !containsTag(validate.ParseJSONArray(tags), wantTag) {
			continue
		}
		logs = append(logs, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	points := []models.AnalyticsPoint{}
	for _, log := range logs {
		point, err := d.aggregateLogSets(log.id, log.date)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return &models.ExerciseAnalytics{
		ExerciseID: exerciseID,
		StartDate:  startDate,
		EndDate:    endDate,
		Points:     points,
	}, nil
}

// aggregateLogSets folds one entry's sets into a point. Reps aggregates
// skip null-reps sets, weight aggregates skip null-weight sets, and
// volume needs both present.
func (d *DB) aggregateLogSets(dailyLogID int64, date string) (models.AnalyticsPoint, error) {
	sets, err := d.listDailyLogSets(dailyLogID)
	if err != nil {
		return models.AnalyticsPoint{}, err
	}

	point := models.AnalyticsPoint{Date: date}
	var (
		repsSum              int
		weightSum, volumeSum float64
		weightN, volumeN     int
	)
	for _, set := range sets {
		if set.Reps != nil {
			point.SetsCount++
			repsSum += *set.Reps
			if *set.Reps > point.RepsMax {
				point.RepsMax = *set.Reps
			}
		}
		if set.Weight != nil {
			weightN++
			weightSum += *set.Weight
			if *set.Weight > point.WeightMax {
				point.WeightMax = *set.Weight
			}
		}
		if set.Reps != nil && set.Weight != nil {
			volume := float64(*set.Reps) * *set.Weight
			volumeN++
			volumeSum += volume
			if volume > point.VolumeMax {
				point.VolumeMax = volume
			}
		}
	}
	if point.SetsCount > 0 {
		point.RepsAvg = float64(repsSum) / float64(point.SetsCount)
	}
	if weightN > 0 {
		point.WeightAvg = weightSum / float64(weightN)
	}
	if volumeN > 0 {
		point.VolumeAvg = volumeSum / float64(volumeN)
	}
	return point, nil
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.ToLower(strings.TrimSpace(tag)) == want {
			return true
		}
	}
	return false
}
