package goal

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core"
)

var ErrNotFound = core.NewNotFoundError("goal")

type (
	Repository interface {
		CreateGoal(ctx context.Context, g Goal) (Goal, error)
		QueryAllGoals(ctx context.Context) ([]Goal, error)
		GetGoalByID(ctx context.Context, id string) (Goal, error)
		DeleteGoal(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ng NewGoal) (Goal, error) {
	if err := ng.Validate(svc.validate); err != nil {
		return Goal{}, err
	}
	now := time.Now().UTC()
	g, err := svc.repo.CreateGoal(ctx, Goal{
		ID:          uuid.New().String(),
		TargetType:  ng.TargetType,
		TargetValue: *ng.TargetValue,
		Description: ng.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Goal{}, errors.Wrap(err, "creating goal")
	}
	return g, nil
}

// QueryAll returns every goal in creation order.
func (svc *Service) QueryAll(ctx context.Context) ([]Goal, error) {
	goals, err := svc.repo.QueryAllGoals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying goals")
	}
	if goals == nil {
		goals = []Goal{}
	}
	sort.SliceStable(goals, func(i, j int) bool { return goals[i].CreatedAt.Before(goals[j].CreatedAt) })
	return goals, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.GetGoalByID(ctx, id); err != nil {
		return err
	}
	if err := svc.repo.DeleteGoal(ctx, id); err != nil {
		return errors.Wrap(err, "deleting goal")
	}
	return nil
}
