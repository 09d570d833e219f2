package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/greencampus/greencampus/core/resource"
)

type recordRepository struct {
	client *firestore.Client
}

var _ resource.Repository = (*recordRepository)(nil)

func NewRecordRepository(client *firestore.Client) resource.Repository {
	return &recordRepository{client: client}
}

func (repo *recordRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(recordsCollection)
}

func (repo *recordRepository) CreateRecord(ctx context.Context, rec resource.Record) (resource.Record, error) {
	if _, err := repo.collection().Doc(rec.ID).Create(ctx, rec); err != nil {
		return resource.Record{}, errors.Wrap(err, "creating record document")
	}
	return rec, nil
}

func (repo *recordRepository) QueryRecords(ctx context.Context, filter resource.Filter) ([]resource.Record, error) {
	q := repo.collection().Query
	if filter.UserID != "" {
		q = q.Where("userId", "==", filter.UserID)
	}
	if filter.Month != nil {
		q = q.Where("month", "==", *filter.Month)
	}
	if filter.Year != nil {
		q = q.Where("year", "==", *filter.Year)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	records := make([]resource.Record, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterating records")
		}
		var rec resource.Record
		if err := doc.DataTo(&rec); err != nil {
			return nil, errors.Wrapf(err, "decoding record %s", doc.Ref.ID)
		}
		rec.ID = doc.Ref.ID
		records = append(records, rec)
	}
	return records, nil
}

func (repo *recordRepository) GetRecordByID(ctx context.Context, id string) (resource.Record, error) {
	if id == "" {
		return resource.Record{}, resource.ErrNotFound
	}
	var rec resource.Record
	if err := getDoc(ctx, repo.collection().Doc(id), &rec, resource.ErrNotFound); err != nil {
		return resource.Record{}, err
	}
	rec.ID = id
	return rec, nil
}

func (repo *recordRepository) UpdateRecord(ctx context.Context, rec resource.Record) (resource.Record, error) {
	if err := updateDoc(ctx, repo.client, repo.collection().Doc(rec.ID), rec, resource.ErrNotFound); err != nil {
		return resource.Record{}, err
	}
	return rec, nil
}

func (repo *recordRepository) DeleteRecord(ctx context.Context, id string) error {
	if id == "" {
		return resource.ErrNotFound
	}
	return deleteDoc(ctx, repo.collection().Doc(id), resource.ErrNotFound)
}
