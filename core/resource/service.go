package resource

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/user"
)

var (
	// errors
	ErrNotFound      = core.NewNotFoundError("resource")
	ErrNotAuthorized = core.NewAuthorizationError("not authorized")
)

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		// QueryRecords returns the records matching the filter, in no particular order.
		QueryRecords(ctx context.Context, filter Filter) ([]Record, error)
		GetRecordByID(ctx context.Context, id string) (Record, error)
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
		DeleteRecord(ctx context.Context, id string) error
	}

	// Owners resolves record owners.
	Owners interface {
		GetUserByID(ctx context.Context, id string) (user.User, error)
	}

	Service struct {
		repo     Repository
		owners   Owners
		validate *core.Validator
	}
)

func NewService(repo Repository, owners Owners, validate *core.Validator) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		validate: validate,
	}
}

// authorize allows the owner of the record and actors managing all records.
func authorize(actor user.User, rec Record) error {
	if rec.UserID == actor.ID || actor.Can(user.CapManageAllRecords) {
		return nil
	}
	return ErrNotAuthorized
}

// scope restricts the filter to the actor's own records unless they may see all of them.
func scope(actor user.User, filter Filter) Filter {
	if !actor.Can(user.CapManageAllRecords) {
		filter.UserID = actor.ID
	}
	return filter
}

func (svc *Service) Create(ctx context.Context, actor user.User, nr NewRecord) (Record, error) {
	if !actor.Can(user.CapManageOwnRecords) {
		return Record{}, ErrNotAuthorized
	}
	if err := nr.Validate(svc.validate); err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	rec := Record{
		ID:               uuid.New().String(),
		UserID:           actor.ID,
		ElectricityUsage: *nr.ElectricityUsage,
		WaterConsumption: *nr.WaterConsumption,
		WasteGenerated:   *nr.WasteGenerated,
		Month:            *nr.Month,
		Year:             *nr.Year,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	rec, err := svc.repo.CreateRecord(ctx, rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "creating record")
	}
	return rec, nil
}

// Records returns the records the actor may see matching the filter, most recent period first.
func (svc *Service) Records(ctx context.Context, actor user.User, filter Filter) ([]Record, error) {
	records, err := svc.repo.QueryRecords(ctx, scope(actor, filter))
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	if records == nil {
		records = []Record{}
	}
	SortByPeriod(records)
	return records, nil
}

// Query is Records with each record's owner attached.
func (svc *Service) Query(ctx context.Context, actor user.User, filter Filter) ([]Entry, error) {
	records, err := svc.Records(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	return svc.Populate(ctx, records)
}

// All returns every record in the store, unsorted.
func (svc *Service) All(ctx context.Context) ([]Record, error) {
	records, err := svc.repo.QueryRecords(ctx, Filter{})
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Latest returns the `n` most recently created records across all users, with their owner.
func (svc *Service) Latest(ctx context.Context, n int) ([]Entry, error) {
	records, err := svc.All(ctx)
	if err != nil {
		return nil, err
	}
	return svc.Populate(ctx, Newest(records, n))
}

// Populate attaches the owner summary to each record.
func (svc *Service) Populate(ctx context.Context, records []Record) ([]Entry, error) {
	owners := make(map[string]*user.Summary)
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		owner, ok := owners[rec.UserID]
		if !ok {
			usr, err := svc.owners.GetUserByID(ctx, rec.UserID)
			switch {
			case err == nil:
				sum := usr.Summary()
				owner = &sum
			case core.IsNotFound(err): // owner deleted
			default:
				return nil, errors.Wrap(err, "finding record owner")
			}
			owners[rec.UserID] = owner
		}
		entries = append(entries, Entry{Record: rec, User: owner})
	}
	return entries, nil
}

func (svc *Service) Update(ctx context.Context, actor user.User, id string, ur UpdateRecord) (Record, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err = authorize(actor, rec); err != nil {
		return Record{}, err
	}
	if err = ur.Validate(svc.validate); err != nil {
		return Record{}, err
	}

	rec = ur.apply(rec)
	rec.UpdatedAt = time.Now().UTC()
	rec, err = svc.repo.UpdateRecord(ctx, rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "updating record")
	}
	return rec, nil
}

func (svc *Service) Delete(ctx context.Context, actor user.User, id string) error {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if err = authorize(actor, rec); err != nil {
		return err
	}
	if err = svc.repo.DeleteRecord(ctx, id); err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return nil
}
