package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/greencampus/greencampus/core/goal"
)

type goalRepository struct {
	client *firestore.Client
}

var _ goal.Repository = (*goalRepository)(nil)

func NewGoalRepository(client *firestore.Client) goal.Repository {
	return &goalRepository{client: client}
}

func (repo *goalRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(goalsCollection)
}

func (repo *goalRepository) CreateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	if _, err := repo.collection().Doc(g.ID).Create(ctx, g); err != nil {
		return goal.Goal{}, errors.Wrap(err, "creating goal document")
	}
	return g, nil
}

func (repo *goalRepository) QueryAllGoals(ctx context.Context) ([]goal.Goal, error) {
	iter := repo.collection().OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	goals := make([]goal.Goal, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterating goals")
		}
		var g goal.Goal
		if err := doc.DataTo(&g); err != nil {
			return nil, errors.Wrapf(err, "decoding goal %s", doc.Ref.ID)
		}
		g.ID = doc.Ref.ID
		goals = append(goals, g)
	}
	return goals, nil
}

func (repo *goalRepository) GetGoalByID(ctx context.Context, id string) (goal.Goal, error) {
	if id == "" {
		return goal.Goal{}, goal.ErrNotFound
	}
	var g goal.Goal
	if err := getDoc(ctx, repo.collection().Doc(id), &g, goal.ErrNotFound); err != nil {
		return goal.Goal{}, err
	}
	g.ID = id
	return g, nil
}

func (repo *goalRepository) DeleteGoal(ctx context.Context, id string) error {
	if id == "" {
		return goal.ErrNotFound
	}
	return deleteDoc(ctx, repo.collection().Doc(id), goal.ErrNotFound)
}
