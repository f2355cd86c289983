package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/devlog/internal/dbx"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/entries"
	"github.com/dmitrijs2005/devlog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Challenges(db dbx.DBTX) challenges.Repository
	Entries(db dbx.DBTX) entries.Repository
}
