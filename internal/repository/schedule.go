package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

const recentLimit = 100

const selectColumns = `
	SELECT
		date,
		employee,
		shift1_start,
		shift1_end,
		has_shift2,
		shift2_start,
		shift2_end,
		orders,
		bonus
	FROM schedule
`

// GetScheduleByMonth returns the stored records of month ordered by date
// and employee.
func (r *Repository) GetScheduleByMonth(month schedule.MonthKey) ([]domain.DayRecord, error) {
	query := selectColumns + `
		WHERE date >= $1 AND date < $2
		ORDER BY date, employee
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	from := month.String() + "-01"
	to := schedule.ShiftMonth(month, 1).String() + "-01"

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetRecentSchedule returns the latest records across all months, newest
// date first.
func (r *Repository) GetRecentSchedule() ([]domain.DayRecord, error) {
	query := selectColumns + `
		ORDER BY date DESC, employee
		LIMIT $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, recentLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]domain.DayRecord, error) {
	records := []domain.DayRecord{}
	for rows.Next() {
		var record domain.DayRecord
		dst := []any{
			&record.Date,
			&record.Employee,
			&record.Shift1Start,
			&record.Shift1End,
			&record.HasShift2,
			&record.Shift2Start,
			&record.Shift2End,
			&record.Orders,
			&record.Bonus,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if record.Shift2Start == "" {
			record.Shift2Start = schedule.DefaultShift2Start
		}
		if record.Shift2End == "" {
			record.Shift2End = schedule.DefaultShift2End
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpsertDayRecords writes every record in one transaction, replacing rows
// that share (date, employee).
func (r *Repository) UpsertDayRecords(records []domain.DayRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedule (
			date,
			employee,
			shift1_start,
			shift1_end,
			has_shift2,
			shift2_start,
			shift2_end,
			orders,
			bonus
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (date, employee) DO UPDATE SET
			shift1_start = excluded.shift1_start,
			shift1_end = excluded.shift1_end,
			has_shift2 = excluded.has_shift2,
			shift2_start = excluded.shift2_start,
			shift2_end = excluded.shift2_end,
			orders = excluded.orders,
			bonus = excluded.bonus,
			updated_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, record := range records {
		params := []any{
			record.Date,
			string(record.Employee),
			record.Shift1Start,
			record.Shift1End,
			record.HasShift2,
			record.Shift2Start,
			record.Shift2End,
			record.Orders,
			record.Bonus,
		}
		if _, err := stmt.ExecContext(ctx, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// DeleteDayRecord removes one record. Deleting a missing record returns
// schedule.ErrRecordNotFound.
func (r *Repository) DeleteDayRecord(key domain.RecordKey) error {
	query := `DELETE FROM schedule WHERE date = $1 AND employee = $2`

	ctx, cancel := r.queryContext()
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, key.Date, string(key.Employee))
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrRecordNotFound
	}

	return nil
}
