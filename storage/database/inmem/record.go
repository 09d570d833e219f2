package inmemdb

import (
	"context"

	"github.com/greencampus/greencampus/core/resource"
)

type recordRepository struct {
	db *recordTable
}

var _ resource.Repository = (*recordRepository)(nil)

func NewRecordRepository(db *DB) resource.Repository {
	return &recordRepository{db: db.record}
}

func (repo *recordRepository) CreateRecord(_ context.Context, rec resource.Record) (resource.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *recordRepository) QueryRecords(_ context.Context, filter resource.Filter) ([]resource.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]resource.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		if filter.Match(*rec) {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *recordRepository) GetRecordByID(_ context.Context, id string) (resource.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		return *rec, nil
	}
	return resource.Record{}, resource.ErrNotFound
}

func (repo *recordRepository) UpdateRecord(_ context.Context, rec resource.Record) (resource.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[rec.ID]; !ok {
		return resource.Record{}, resource.ErrNotFound
	}
	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *recordRepository) DeleteRecord(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return resource.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
