// Package storage opens the repositories of the configured database engine.
package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/user"
	"github.com/greencampus/greencampus/storage/database"
	inmemdb "github.com/greencampus/greencampus/storage/database/inmem"
	sqlxrepos "github.com/greencampus/greencampus/storage/database/sqlx"
	firestoredb "github.com/greencampus/greencampus/storage/firestore"
)

// Store groups the repositories of one engine.
type Store struct {
	Engine  string
	Users   user.Repository
	Records resource.Repository
	Goals   goal.Repository

	// SQL is the postgres connection, nil for the other engines.
	SQL *sql.DB

	ping  func(ctx context.Context) error
	close func() error
}

// Ping checks that the underlying database can be reached.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the engine selected by conf.Database.Engine.
// The postgres database is created and migrated when needed.
func Open(ctx context.Context, conf *core.Config) (*Store, error) {
	switch engine := conf.Database.Engine; engine {
	case core.EngineMemory, "":
		db := inmemdb.NewDB()
		return &Store{
			Engine:  core.EngineMemory,
			Users:   inmemdb.NewUserRepository(db),
			Records: inmemdb.NewRecordRepository(db),
			Goals:   inmemdb.NewGoalRepository(db),
		}, nil

	case core.EngineFirestore:
		client, err := firestoredb.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		return &Store{
			Engine:  engine,
			Users:   firestoredb.NewUserRepository(client),
			Records: firestoredb.NewRecordRepository(client),
			Goals:   firestoredb.NewGoalRepository(client),
			ping:    func(ctx context.Context) error { return firestoredb.Ping(ctx, client) },
			close:   client.Close,
		}, nil

	case core.EnginePostgres:
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db.DB); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "migrating database")
		}
		return &Store{
			Engine:  engine,
			Users:   sqlxrepos.NewUserRepository(db),
			Records: sqlxrepos.NewRecordRepository(db),
			Goals:   sqlxrepos.NewGoalRepository(db),
			SQL:     db.DB,
			ping:    db.PingContext,
			close:   db.Close,
		}, nil

	default:
		return nil, errors.Errorf("unknown database engine %q", engine)
	}
}
