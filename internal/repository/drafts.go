package repository

import (
	"database/sql"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

// InsertDraft materializes a draft and its assignments in one transaction,
// so a half-written draft never becomes visible.
func (r *Repository) InsertDraft(draft *domain.ScheduleDraft, assignments []*domain.DraftShiftAssignment) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedule_drafts (business_id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query,
		draft.BusinessID, draft.Name, draft.StartDate, draft.EndDate, domain.DraftStatusDraft,
	).Scan(&draft.ID, &draft.CreatedAt, &draft.Version); err != nil {
		return err
	}
	draft.Status = domain.DraftStatusDraft

	for _, a := range assignments {
		a.DraftID = draft.ID

		query := `
			INSERT INTO draft_shift_assignments (draft_id, shift_id, staff_id, confidence_score, reasoning, is_ai_generated, is_manual_override)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, version
		`
		if err := tx.QueryRowContext(ctx, query,
			a.DraftID, a.ShiftID, a.StaffID, a.ConfidenceScore,
			a.Reasoning, a.IsAIGenerated, a.IsManualOverride,
		).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetDraftsByBusiness(businessID int64) ([]*domain.ScheduleDraft, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, business_id, name, start_date, end_date, status, created_at, version
		FROM schedule_drafts
		WHERE business_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ScheduleDraft
	for rows.Next() {
		draft := &domain.ScheduleDraft{}
		if err := rows.Scan(
			&draft.ID, &draft.BusinessID, &draft.Name, &draft.StartDate,
			&draft.EndDate, &draft.Status, &draft.CreatedAt, &draft.Version,
		); err != nil {
			return nil, err
		}
		result = append(result, draft)
	}

	return result, rows.Err()
}

func (r *Repository) GetDraftByID(id int64) (*domain.ScheduleDraft, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, business_id, name, start_date, end_date, status, created_at, version
		FROM schedule_drafts
		WHERE id = $1
	`

	draft := &domain.ScheduleDraft{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(
		&draft.ID, &draft.BusinessID, &draft.Name, &draft.StartDate,
		&draft.EndDate, &draft.Status, &draft.CreatedAt, &draft.Version,
	); err != nil {
		return nil, err
	}

	return draft, nil
}

func (r *Repository) GetDraftAssignments(draftID int64) ([]*domain.DraftShiftAssignment, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, draft_id, shift_id, staff_id, confidence_score, reasoning, is_ai_generated, is_manual_override, created_at, version
		FROM draft_shift_assignments
		WHERE draft_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.DraftShiftAssignment
	for rows.Next() {
		a := &domain.DraftShiftAssignment{}
		if err := rows.Scan(
			&a.ID, &a.DraftID, &a.ShiftID, &a.StaffID, &a.ConfidenceScore,
			&a.Reasoning, &a.IsAIGenerated, &a.IsManualOverride,
			&a.CreatedAt, &a.Version,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

// PublishDraft flips a draft to published with an optimistic version
// check. sql.ErrNoRows means the draft vanished or was published
// concurrently.
func (r *Repository) PublishDraft(draft *domain.ScheduleDraft) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE schedule_drafts
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query,
		domain.DraftStatusPublished, draft.ID, draft.Version,
	).Scan(&draft.Version); err != nil {
		return err
	}
	draft.Status = domain.DraftStatusPublished
	return nil
}

func (r *Repository) DeleteDraft(id int64) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM draft_shift_assignments WHERE draft_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM schedule_drafts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
