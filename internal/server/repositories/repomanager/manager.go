package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/amail/internal/dbx"
	"github.com/dmitrijs2005/amail/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/amail/internal/server/repositories/balances"
	"github.com/dmitrijs2005/amail/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/amail/internal/server/repositories/ledgerstate"
	"github.com/dmitrijs2005/amail/internal/server/repositories/mailindex"
	"github.com/dmitrijs2005/amail/internal/server/repositories/mails"
	"github.com/dmitrijs2005/amail/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Mails(db dbx.DBTX) mails.Repository
	MailIndex(db dbx.DBTX) mailindex.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	LedgerState(db dbx.DBTX) ledgerstate.Repository
	Balances(db dbx.DBTX) balances.Repository
}
