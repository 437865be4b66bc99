package repository

import (
	"encoding/json"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func (r *Repository) InsertPreference(pref *domain.StaffPreference) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	value, err := json.Marshal(pref.Value)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO staff_preferences (staff_id, type, value, priority, effective_date, expiry_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		pref.StaffID, pref.Type, value, pref.Priority,
		pref.EffectiveDate, pref.ExpiryDate, pref.IsActive,
	).Scan(&pref.ID, &pref.CreatedAt, &pref.Version)
}

// GetActivePreferencesByBusiness joins through staff so callers get every
// active preference in one business-scoped read.
func (r *Repository) GetActivePreferencesByBusiness(businessID int64) ([]*domain.StaffPreference, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT sp.id, sp.staff_id, sp.type, sp.value, sp.priority, sp.effective_date, sp.expiry_date, sp.is_active, sp.created_at, sp.version
		FROM staff_preferences sp
		JOIN staff s ON s.id = sp.staff_id
		WHERE s.business_id = $1 AND sp.is_active = true
		ORDER BY sp.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.StaffPreference
	for rows.Next() {
		pref := &domain.StaffPreference{}
		var value []byte

		if err := rows.Scan(
			&pref.ID, &pref.StaffID, &pref.Type, &value, &pref.Priority,
			&pref.EffectiveDate, &pref.ExpiryDate, &pref.IsActive,
			&pref.CreatedAt, &pref.Version,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(value, &pref.Value); err != nil {
			return nil, err
		}

		result = append(result, pref)
	}

	return result, rows.Err()
}
