package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/dbx"
	"github.com/dmitrijs2005/amail/internal/logging"
	"github.com/dmitrijs2005/amail/internal/server/auth"
	"github.com/dmitrijs2005/amail/internal/server/chain"
	"github.com/dmitrijs2005/amail/internal/server/config"
	"github.com/dmitrijs2005/amail/internal/server/models"
	"github.com/dmitrijs2005/amail/internal/server/repositories/repomanager"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccountService registers ledger identities and issues the tokens the
// gRPC layer resolves callers from.
type AccountService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	contract                     string
	minContractBalance           int64
	genesisBalance               int64
	logger                       logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		contract:                     cfg.ContractAccount,
		minContractBalance:           cfg.MinContractBalance,
		genesisBalance:               cfg.GenesisBalance,
		logger:                       logger.With("module", "accounts"),
	}
}

// Register creates the account and credits it the genesis balance.
func (s *AccountService) Register(ctx context.Context, name string, salt, verifier []byte) (*models.Account, error) {
	if name == "" || name == s.contract || len(salt) == 0 || len(verifier) == 0 {
		return nil, common.ErrorValidation
	}

	account := &models.Account{
		Name:      name,
		Salt:      salt,
		Verifier:  verifier,
		CreatedAt: time.Now(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).Create(ctx, account); err != nil {
			return err
		}
		bank := chain.NewBank(s.repomanager.Balances(tx), s.contract, s.minContractBalance)
		return bank.Mint(ctx, name, s.genesisBalance)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account registered", "account", name)
	return account, nil
}

func (s *AccountService) getRandomSalt() []byte {
	return common.GenerateRandByteArray(32)
}

// GetSalt returns the account's salt. Unknown names get a random salt so
// that the answer does not reveal which accounts exist.
func (s *AccountService) GetSalt(ctx context.Context, name string) ([]byte, error) {
	account, err := s.repomanager.Accounts(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.getRandomSalt(), nil
		}
		return nil, common.ErrorInternal
	}
	return account.Salt, nil
}

func (s *AccountService) checkVerifier(verifier []byte, verifierCandidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, verifierCandidate) == 1
}

func (s *AccountService) Login(ctx context.Context, name string, verifierCandidate []byte) (*TokenPair, error) {
	account, err := s.repomanager.Accounts(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.checkVerifier(account.Verifier, verifierCandidate) {
		s.logger.Warn(ctx, "login rejected", "account", name)
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, s.db, account.Name)
}

// RefreshToken exchanges a valid refresh token for a new pair. The old
// refresh token is revoked in the same transaction.
func (s *AccountService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.RefreshTokens(tx)

		token, err := repo.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(time.Now()) {
			return common.ErrRefreshTokenExpired
		}

		if err := repo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, tx, token.Account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Balance returns the account's current balance.
func (s *AccountService) Balance(ctx context.Context, account string) (int64, error) {
	bank := chain.NewBank(s.repomanager.Balances(s.db), s.contract, s.minContractBalance)
	amount, err := bank.Balance(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("error reading balance: %w", err)
	}
	return amount, nil
}

func (s *AccountService) generateTokenPair(ctx context.Context, db dbx.DBTX, account string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(account, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	expires := time.Now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(db).Create(ctx, account, refreshToken, expires); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
