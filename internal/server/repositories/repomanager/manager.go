package repomanager

import (
	"context"
	"database/sql"

	"github.com/furari-app/furari/internal/dbx"
	"github.com/furari-app/furari/internal/server/repositories/records"
	"github.com/furari-app/furari/internal/server/repositories/refreshtokens"
	"github.com/furari-app/furari/internal/server/repositories/resettokens"
	"github.com/furari-app/furari/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either a *sql.DB or an open
// *sql.Tx, so services can run the same repository code inside and outside
// transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Records(db dbx.DBTX) records.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
}
