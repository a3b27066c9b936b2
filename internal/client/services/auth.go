// Package services contains application services for the AMail client.
// This file defines the authentication service: register, login, session
// resume across runs, liveness probe and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/amail/internal/client/client"
	"github.com/dmitrijs2005/amail/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/cryptox"
	"github.com/dmitrijs2005/amail/internal/dbx"
)

// ErrNoSession is returned by Resume when no earlier session was saved.
var ErrNoSession = errors.New("no saved session")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the ledger node; returns its balance.
//   - Login: authenticate and remember the session in the session file.
//   - Resume: continue the session saved by an earlier run.
//   - Logout: forget the session locally.
//   - Ping: check server liveness.
//   - Close: persist the latest refresh token and release the client.
type AuthService interface {
	Register(ctx context.Context, name string, password []byte) (int64, error)
	Login(ctx context.Context, name string, password []byte) error
	Resume(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and the local session database.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Register generates a random salt, derives the verifier from the password
// and sends salt and verifier to the server. The password never leaves
// the client.
func (a *authService) Register(ctx context.Context, name string, password []byte) (int64, error) {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	verifier := cryptox.VerifierFor(password, salt)

	balance, err := a.client.Register(ctx, name, salt, verifier)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Login fetches the account salt, proves knowledge of the password with
// the derived verifier and saves the session.
func (a *authService) Login(ctx context.Context, name string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, name)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	if err := a.client.Login(ctx, name, cryptox.VerifierFor(password, salt)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveSession(ctx, name, a.client.CurrentRefreshToken()); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) saveSession(ctx context.Context, name string, refreshToken string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, metadata.KeyAccount, []byte(name)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyRefreshToken, []byte(refreshToken))
	})
}

// Resume continues the saved session and returns its account name. A
// rejected refresh token clears the saved session.
func (a *authService) Resume(ctx context.Context) (string, error) {
	repo := a.getMetadataRepo(a.db)

	name, err := repo.Get(ctx, metadata.KeyAccount)
	if err != nil {
		return "", err
	}
	token, err := repo.Get(ctx, metadata.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	if len(name) == 0 || len(token) == 0 {
		return "", ErrNoSession
	}

	if err := a.client.Resume(ctx, string(token)); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = repo.Clear(ctx)
		}
		return "", err
	}

	if err := repo.Set(ctx, metadata.KeyRefreshToken, []byte(a.client.CurrentRefreshToken())); err != nil {
		return "", err
	}
	return string(name), nil
}

// Logout drops the tokens and the saved session.
func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	return a.getMetadataRepo(a.db).Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close saves the refresh token the session ended with and releases the
// underlying client.
func (a *authService) Close(ctx context.Context) error {
	if token := a.client.CurrentRefreshToken(); token != "" {
		if err := a.getMetadataRepo(a.db).Set(ctx, metadata.KeyRefreshToken, []byte(token)); err != nil {
			_ = a.client.Close()
			return err
		}
	}
	return a.client.Close()
}
