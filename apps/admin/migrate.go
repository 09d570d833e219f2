package main

import (
	"context"
)

func (cli *commandLine) migrate(ctx context.Context, command string, args ...string) error {
	if cli.db == nil {
		return errNoSQL
	}
	return migrateFunc(ctx, cli.db, command, args...)
}
