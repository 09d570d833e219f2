package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/resource"
)

const recordColumns = "id, user_id, electricity_usage, water_consumption, waste_generated, month, year, created_at, updated_at"

type recordRepository struct {
	db *sqlx.DB
}

var _ resource.Repository = (*recordRepository)(nil)

func NewRecordRepository(db *sqlx.DB) resource.Repository {
	return &recordRepository{db: db}
}

func (repo *recordRepository) CreateRecord(ctx context.Context, rec resource.Record) (resource.Record, error) {
	q := `INSERT INTO resource_records (` + recordColumns + `)
	      VALUES (:id, :user_id, :electricity_usage, :water_consumption, :waste_generated, :month, :year, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, rec); err != nil {
		return resource.Record{}, errors.Wrap(err, "inserting record")
	}
	return rec, nil
}

func (repo *recordRepository) QueryRecords(ctx context.Context, filter resource.Filter) ([]resource.Record, error) {
	var conds []string
	var args []interface{}
	addCond := func(col string, val interface{}) {
		args = append(args, val)
		conds = append(conds, col+" = $"+strconv.Itoa(len(args)))
	}

	if filter.UserID != "" {
		if !isUUID(filter.UserID) {
			return []resource.Record{}, nil
		}
		addCond("user_id", filter.UserID)
	}
	if filter.Month != nil {
		addCond("month", *filter.Month)
	}
	if filter.Year != nil {
		addCond("year", *filter.Year)
	}

	q := `SELECT ` + recordColumns + ` FROM resource_records`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}

	records := make([]resource.Record, 0)
	if err := repo.db.SelectContext(ctx, &records, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting records")
	}
	return records, nil
}

func (repo *recordRepository) GetRecordByID(ctx context.Context, id string) (resource.Record, error) {
	if !isUUID(id) {
		return resource.Record{}, resource.ErrNotFound
	}
	var rec resource.Record
	q := `SELECT ` + recordColumns + ` FROM resource_records WHERE id = $1`
	if err := repo.db.GetContext(ctx, &rec, q, id); err != nil {
		if err == sql.ErrNoRows {
			return resource.Record{}, resource.ErrNotFound
		}
		return resource.Record{}, errors.Wrap(err, "selecting record")
	}
	return rec, nil
}

func (repo *recordRepository) UpdateRecord(ctx context.Context, rec resource.Record) (resource.Record, error) {
	q := `UPDATE resource_records
	      SET electricity_usage = :electricity_usage, water_consumption = :water_consumption,
	          waste_generated = :waste_generated, month = :month, year = :year, updated_at = :updated_at
	      WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, rec)
	if err != nil {
		return resource.Record{}, errors.Wrap(err, "updating record")
	}
	if err = checkAffected(res, resource.ErrNotFound); err != nil {
		return resource.Record{}, err
	}
	return rec, nil
}

func (repo *recordRepository) DeleteRecord(ctx context.Context, id string) error {
	if !isUUID(id) {
		return resource.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM resource_records WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return checkAffected(res, resource.ErrNotFound)
}
