package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/goal"
)

const goalColumns = "id, target_type, target_value, description, created_at, updated_at"

type goalRepository struct {
	db *sqlx.DB
}

var _ goal.Repository = (*goalRepository)(nil)

func NewGoalRepository(db *sqlx.DB) goal.Repository {
	return &goalRepository{db: db}
}

func (repo *goalRepository) CreateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	q := `INSERT INTO goals (` + goalColumns + `)
	      VALUES (:id, :target_type, :target_value, :description, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, g); err != nil {
		return goal.Goal{}, errors.Wrap(err, "inserting goal")
	}
	return g, nil
}

func (repo *goalRepository) QueryAllGoals(ctx context.Context) ([]goal.Goal, error) {
	goals := make([]goal.Goal, 0)
	q := `SELECT ` + goalColumns + ` FROM goals ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &goals, q); err != nil {
		return nil, errors.Wrap(err, "selecting goals")
	}
	return goals, nil
}

func (repo *goalRepository) GetGoalByID(ctx context.Context, id string) (goal.Goal, error) {
	if !isUUID(id) {
		return goal.Goal{}, goal.ErrNotFound
	}
	var g goal.Goal
	q := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`
	if err := repo.db.GetContext(ctx, &g, q, id); err != nil {
		if err == sql.ErrNoRows {
			return goal.Goal{}, goal.ErrNotFound
		}
		return goal.Goal{}, errors.Wrap(err, "selecting goal")
	}
	return g, nil
}

func (repo *goalRepository) DeleteGoal(ctx context.Context, id string) error {
	if !isUUID(id) {
		return goal.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting goal")
	}
	return checkAffected(res, goal.ErrNotFound)
}
