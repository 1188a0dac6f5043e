package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/voltdrive/internal/dbx"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/cars"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Ping(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Cars(db dbx.DBTX) cars.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
