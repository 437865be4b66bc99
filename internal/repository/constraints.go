package repository

import (
	"encoding/json"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

func (r *Repository) InsertConstraint(constraint *domain.SchedulingConstraint) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	value, err := json.Marshal(constraint.Value)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scheduling_constraints (business_id, type, value, priority, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query,
		constraint.BusinessID, constraint.Type, value, constraint.Priority, constraint.IsActive,
	).Scan(&constraint.ID, &constraint.CreatedAt, &constraint.Version)
}

func (r *Repository) GetActiveConstraints(businessID int64) ([]*domain.SchedulingConstraint, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, business_id, type, value, priority, is_active, created_at, version
		FROM scheduling_constraints
		WHERE business_id = $1 AND is_active = true
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.SchedulingConstraint
	for rows.Next() {
		constraint := &domain.SchedulingConstraint{}
		var value []byte

		if err := rows.Scan(
			&constraint.ID, &constraint.BusinessID, &constraint.Type, &value,
			&constraint.Priority, &constraint.IsActive, &constraint.CreatedAt, &constraint.Version,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(value, &constraint.Value); err != nil {
			return nil, err
		}

		result = append(result, constraint)
	}

	return result, rows.Err()
}
