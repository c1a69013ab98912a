package repomanager

import (
	"context"
	"database/sql"

	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/clipboard"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/files"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/tags"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either *sql.DB or *sql.Tx,
// so services can compose them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tags(db dbx.DBTX) tags.Repository
	Clipboard(db dbx.DBTX) clipboard.Repository
	Files(db dbx.DBTX) files.Repository
}
