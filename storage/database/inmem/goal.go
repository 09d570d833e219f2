package inmemdb

import (
	"context"

	"github.com/greencampus/greencampus/core/goal"
)

type goalRepository struct {
	db *goalTable
}

var _ goal.Repository = (*goalRepository)(nil)

func NewGoalRepository(db *DB) goal.Repository {
	return &goalRepository{db: db.goal}
}

func (repo *goalRepository) CreateGoal(_ context.Context, g goal.Goal) (goal.Goal, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *goalRepository) QueryAllGoals(_ context.Context) ([]goal.Goal, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	goals := make([]goal.Goal, 0, len(repo.db.table))
	for _, g := range repo.db.table {
		goals = append(goals, *g)
	}
	return goals, nil
}

func (repo *goalRepository) GetGoalByID(_ context.Context, id string) (goal.Goal, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if g, ok := repo.db.table[id]; ok {
		return *g, nil
	}
	return goal.Goal{}, goal.ErrNotFound
}

func (repo *goalRepository) DeleteGoal(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return goal.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
