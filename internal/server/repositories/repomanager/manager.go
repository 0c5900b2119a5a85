package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gympro/internal/dbx"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/exercises"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/users"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/workouts"
)

// RepositoryManager hands out repositories bound to a connection or an open
// transaction, so services can group writes with dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Workouts(db dbx.DBTX) workouts.Repository
	Exercises(db dbx.DBTX) exercises.Repository
}
