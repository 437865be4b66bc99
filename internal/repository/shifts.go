package repository

import (
	"time"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func (r *Repository) InsertShift(shift *domain.Shift) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO shifts (business_id, date, start_time, end_time, required_skill, required_staff_count, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		shift.BusinessID, shift.Date, shift.StartTime, shift.EndTime,
		shift.RequiredSkill, shift.RequiredStaffCount, shift.HourlyRate,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.Version)
}

func (r *Repository) GetShiftsByBusinessAndRange(businessID int64, startDate, endDate time.Time) ([]*domain.Shift, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, business_id, date, start_time, end_time, required_skill, required_staff_count, hourly_rate, created_at, version
		FROM shifts
		WHERE business_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Shift
	for rows.Next() {
		shift := &domain.Shift{}
		if err := rows.Scan(
			&shift.ID, &shift.BusinessID, &shift.Date, &shift.StartTime, &shift.EndTime,
			&shift.RequiredSkill, &shift.RequiredStaffCount, &shift.HourlyRate,
			&shift.CreatedAt, &shift.Version,
		); err != nil {
			return nil, err
		}
		result = append(result, shift)
	}

	return result, rows.Err()
}
