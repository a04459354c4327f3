// ABOUTME: Nutrition ledger: singleton daily targets and per-item food logs.
// ABOUTME: Summaries sum an existing day's rows; month series are sparse.
package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/obycajnypes/logly/internal/models"
	"github.com/obycajnypes/logly/internal/validate"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// GetCaloriesTargets returns the singleton target row, re-seeding the
// defaults if the row is somehow missing.
func (d *DB) GetCaloriesTargets() (*models.CaloriesTargets, error) {
	targets, err := d.readCaloriesTargets()
	if err == nil {
		return targets, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get calories targets: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT OR IGNORE INTO calories_targets (id, target_kcal, target_protein)
		VALUES (1, ?, ?)`,
		DefaultTargetKcal, DefaultTargetProtein,
	)
	if err != nil {
		return nil, fmt.Errorf("seed calories targets: %w", err)
	}
	targets, err = d.readCaloriesTargets()
	if err != nil {
		return nil, fmt.Errorf("get calories targets: %w", err)
	}
	return targets, nil
}

// SetCaloriesTargets overwrites both targets and returns the stored
// row. Both values must be strictly positive; zero is not a way to
// unset a target.
func (d *DB) SetCaloriesTargets(targetKcal, targetProtein float64) (*models.CaloriesTargets, error) {
	if targetKcal <= 0 {
		return nil, &validate.Error{Field: "Target kcal", Detail: "must be greater than zero"}
	}
	if targetProtein <= 0 {
		return nil, &validate.Error{Field: "Target protein", Detail: "must be greater than zero"}
	}

	_, err := d.db.Exec(`
		INSERT INTO calories_targets (id, target_kcal, target_protein, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			target_kcal = excluded.target_kcal,
			target_protein = excluded.target_protein,
			updated_at = CURRENT_TIMESTAMP`,
		targetKcal, targetProtein,
	)
	if err != nil {
		return nil, fmt.Errorf("set calories targets: %w", err)
	}
	return d.GetCaloriesTargets()
}

func (d *DB) readCaloriesTargets() (*models.CaloriesTargets, error) {
	var t models.CaloriesTargets
	err := d.db.QueryRow(`
		SELECT target_kcal, target_protein, updated_at
		FROM calories_targets WHERE id = 1`,
	).Scan(&t.TargetKcal, &t.TargetProtein, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddFoodLog records one consumed item and returns the stored row.
// Kcal and protein are the portion totals computed by the caller from
// the food database's per-100g values.
func (d *DB) AddFoodLog(in models.FoodLogInput) (*models.FoodLog, error) {
	consumedOn, err := validate.RequiredText("Date", in.ConsumedOn)
	if err != nil {
		return nil, err
	}
	foodID, err := validate.RequiredText("Food ID", in.FoodID)
	if err != nil {
		return nil, err
	}
	title, err := validate.RequiredText("Title", in.Title)
	if err != nil {
		return nil, err
	}
	if in.Grams <= 0 {
		return nil, &validate.Error{Field: "Grams", Detail: "must be greater than zero"}
	}
	kcal, err := validate.NonNegativeNumber("Kcal", in.Kcal)
	if err != nil {
		return nil, err
	}
	protein, err := validate.NonNegativeNumber("Protein", in.Protein)
	if err != nil {
		return nil, err
	}
	imageURL := validate.OptionalText(in.ImageURL)

	res, err := d.db.Exec(`
		INSERT INTO calories_food_logs (consumed_on, food_id, title, grams, kcal, protein, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		consumedOn, foodID, title, in.Grams, kcal, protein, imageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("insert food log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert food log: %w", err)
	}
	return d.getFoodLog(id)
}

// ListFoodLogs returns a date's items, newest first.
func (d *DB) ListFoodLogs(consumedOn string) ([]models.FoodLog, error) {
	date, err := validate.RequiredText("Date", consumedOn)
	if err != nil {
		return nil, err
	}
	rows, err := d.db.Query(`
		SELECT id, consumed_on, food_id, title, grams, kcal, protein, image_url, created_at
		FROM calories_food_logs
		WHERE consumed_on = ?
		ORDER BY id DESC`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}
	defer rows.Close()
	return scanFoodLogs(rows)
}

// DeleteFoodLog removes one item scoped to its date and returns the
// day's fresh totals. The date scope keeps a stale id from deleting
// another day's row.
func (d *DB) DeleteFoodLog(id int64, consumedOn string) (*models.DaySummary, error) {
	logID, err := validate.PositiveInt("Food log ID", id)
	if err != nil {
		return nil, err
	}
	date, err := validate.RequiredText("Date", consumedOn)
	if err != nil {
		return nil, err
	}

	res, err := d.db.Exec(
		"DELETE FROM calories_food_logs WHERE id = ? AND consumed_on = ?",
		logID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("delete food log: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete food log: %w", err)
	}
	if affected == 0 {
		return nil, ErrFoodLogNotFound
	}
	return d.GetDaySummary(date)
}

// GetDaySummary returns a date's kcal/protein totals; a date with no
// rows sums to zero.
func (d *DB) GetDaySummary(consumedOn string) (*models.DaySummary, error) {
	date, err := validate.RequiredText("Date", consumedOn)
	if err != nil {
		return nil, err
	}
	summary := models.DaySummary{ConsumedOn: date}
	err = d.db.QueryRow(`
		SELECT COALESCE(SUM(kcal), 0), COALESCE(SUM(protein), 0)
		FROM calories_food_logs
		WHERE consumed_on = ?`,
		date,
	).Scan(&summary.Kcal, &summary.Protein)
	if err != nil {
		return nil, fmt.Errorf("summarize day: %w", err)
	}
	return &summary, nil
}

// GetMonthSummary returns the per-day totals for one calendar month.
// The month must be a strict YYYY-MM string; only dates with at least
// one food log produce a point.
func (d *DB) GetMonthSummary(month string) (*models.MonthSummary, error) {
	m, err := validate.RequiredText("Month", month)
	if err != nil {
		return nil, err
	}
	if !monthPattern.MatchString(m) {
		return nil, &validate.Error{Field: "Month", Detail: "must be in YYYY-MM format"}
	}

	start, err := time.Parse("2006-01", m)
	if err != nil {
		return nil, &validate.Error{Field: "Month", Detail: "must be in YYYY-MM format"}
	}
	startDate := start.Format("2006-01-02")
	endDate := start.AddDate(0, 1, -1).Format("2006-01-02")

	rows, err := d.db.Query(`
		SELECT consumed_on, SUM(kcal), SUM(protein)
		FROM calories_food_logs
		WHERE consumed_on BETWEEN ? AND ?
		GROUP BY consumed_on
		ORDER BY consumed_on ASC`,
		startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize month: %w", err)
	}
	defer rows.Close()

	points := []models.MonthPoint{}
	for rows.Next() {
		var p models.MonthPoint
		if err := rows.Scan(&p.Date, &p.Kcal, &p.Protein); err != nil {
			return nil, fmt.Errorf("scan month point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.MonthSummary{
		Month:     m,
		StartDate: startDate,
		EndDate:   endDate,
		Points:    points,
	}, nil
}

func (d *DB) getFoodLog(id int64) (*models.FoodLog, error) {
	row := d.db.QueryRow(`
		SELECT id, consumed_on, food_id, title, grams, kcal, protein, image_url, created_at
		FROM calories_food_logs WHERE id = ?`,
		id,
	)
	log, err := scanFoodLog(row)
	if err == sql.ErrNoRows {
		return nil, ErrFoodLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get food log: %w", err)
	}
	return log, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodLog(row rowScanner) (*models.FoodLog, error) {
	var (
		log      models.FoodLog
		imageURL sql.NullString
	)
	err := row.Scan(&log.ID, &log.ConsumedOn, &log.FoodID, &log.Title,
		&log.Grams, &log.Kcal, &log.Protein, &imageURL, &log.CreatedAt)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		log.ImageURL = &imageURL.String
	}
	return &log, nil
}

func scanFoodLogs(rows *sql.Rows) ([]models.FoodLog, error) {
	logs := []models.FoodLog{}
	for rows.Next() {
		log, err := scanFoodLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food log: %w", err)
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}
