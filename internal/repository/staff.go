package repository

import (
	"encoding/json"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func (r *Repository) InsertStaff(staff *domain.Staff) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	skills, err := json.Marshal(staff.Skills)
	if err != nil {
		return err
	}
	availability, err := json.Marshal(staff.Availability)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO staff (business_id, name, skills, availability, reliability_score, is_active, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		staff.BusinessID, staff.Name, skills, availability,
		staff.ReliabilityScore, staff.IsActive, staff.HourlyRate,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.Version)
}

func (r *Repository) GetStaffByBusiness(businessID int64) ([]*domain.Staff, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, business_id, name, skills, availability, reliability_score, is_active, hourly_rate, created_at, version
		FROM staff
		WHERE business_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Staff
	for rows.Next() {
		staff := &domain.Staff{}
		var skills, availability []byte

		if err := rows.Scan(
			&staff.ID, &staff.BusinessID, &staff.Name, &skills, &availability,
			&staff.ReliabilityScore, &staff.IsActive, &staff.HourlyRate,
			&staff.CreatedAt, &staff.Version,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(skills, &staff.Skills); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(availability, &staff.Availability); err != nil {
			return nil, err
		}

		result = append(result, staff)
	}

	return result, rows.Err()
}
