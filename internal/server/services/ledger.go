package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/dmitrijs2005/amail/internal/dbx"
	"github.com/dmitrijs2005/amail/internal/logging"
	"github.com/dmitrijs2005/amail/internal/mask"
	"github.com/dmitrijs2005/amail/internal/server/chain"
	"github.com/dmitrijs2005/amail/internal/server/config"
	"github.com/dmitrijs2005/amail/internal/server/metrics"
	"github.com/dmitrijs2005/amail/internal/server/models"
	"github.com/dmitrijs2005/amail/internal/server/repositories/repomanager"
)

// LedgerService is the mail ledger. Every operation runs under the service
// lock and all of its writes share one transaction, so a rejected call
// leaves the tables untouched.
type LedgerService struct {
	mu                 sync.RWMutex
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	clock              chain.Clock
	contract           string
	minContractBalance int64
	seed               string
	metrics            *metrics.Metrics
	logger             logging.Logger
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, clock chain.Clock, cfg *config.Config,
	met *metrics.Metrics, logger logging.Logger) *LedgerService {
	return &LedgerService{
		db:                 db,
		repomanager:        m,
		clock:              clock,
		contract:           cfg.ContractAccount,
		minContractBalance: cfg.MinContractBalance,
		seed:               cfg.RollingStateSeed,
		metrics:            met,
		logger:             logger.With("module", "ledger"),
	}
}

// Init seeds the rolling state of a fresh ledger. An existing state is kept.
func (s *LedgerService) Init(ctx context.Context) error {
	if s.seed == "" {
		return common.ErrorInvalidState
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	states := s.repomanager.LedgerState(s.db)
	if err := states.Init(ctx, s.seed); err != nil {
		return fmt.Errorf("error seeding rolling state: %w", err)
	}
	code, err := states.Get(ctx)
	if err != nil {
		return fmt.Errorf("error reading rolling state: %w", err)
	}
	s.metrics.SetRollingStateLen(len(code))
	return nil
}

// SendMail records mailID as sent by the caller to to. It returns false,
// and writes nothing, when mailID was used before.
func (s *LedgerService) SendMail(ctx context.Context, call models.Call, to, mailID, phrase string) (bool, error) {
	if call.Caller == "" || to == "" || mailID == "" {
		s.metrics.ObserveSend(metrics.ResultInvalid)
		return false, common.ErrorValidation
	}
	if err := mask.ValidatePhrase(phrase); err != nil {
		s.metrics.ObserveSend(metrics.ResultInvalid)
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		sent      bool
		nextState string
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		mails := s.repomanager.Mails(tx)

		exists, err := mails.Exists(ctx, mailID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		states := s.repomanager.LedgerState(tx)
		code, err := states.Get(ctx)
		if err != nil {
			return fmt.Errorf("error reading rolling state: %w", err)
		}

		ts := s.clock.Now()
		res, err := mask.Derive(ts, phrase, code)
		if err != nil {
			return err
		}
		record := &models.MailRecord{
			ID:         mailID,
			Timestamp:  ts,
			Classifier: res.Classifier,
			Mask:       res.Mask,
		}
		if err := mails.Create(ctx, record); err != nil {
			return err
		}

		index := s.repomanager.MailIndex(tx)
		if err := index.Append(ctx, call.Caller, models.RoleSent, mailID); err != nil {
			return err
		}
		if err := index.Append(ctx, to, models.RoleReceived, mailID); err != nil {
			return err
		}

		if err := states.Put(ctx, res.NextState); err != nil {
			return fmt.Errorf("error storing rolling state: %w", err)
		}

		sent = true
		nextState = res.NextState
		return nil
	})
	if err != nil {
		s.metrics.ObserveSend(metrics.ResultError)
		s.logger.Error(ctx, "send failed", "mail_id", mailID, "from", call.Caller, "error", err)
		return false, err
	}

	if !sent {
		s.metrics.ObserveSend(metrics.ResultDuplicate)
		s.logger.Info(ctx, "duplicate mail id", "mail_id", mailID, "from", call.Caller)
		return false, nil
	}

	s.metrics.ObserveSend(metrics.ResultOK)
	s.metrics.SetRollingStateLen(len(nextState))
	s.logger.Debug(ctx, "mail sent", "mail_id", mailID, "from", call.Caller, "to", to)
	return true, nil
}

// SentMail returns the caller's sent index in send order.
func (s *LedgerService) SentMail(ctx context.Context, call models.Call) ([]string, error) {
	return s.listIndex(ctx, call.Caller, models.RoleSent)
}

// ReceivedMail returns the caller's received index in send order.
func (s *LedgerService) ReceivedMail(ctx context.Context, call models.Call) ([]string, error) {
	return s.listIndex(ctx, call.Caller, models.RoleReceived)
}

func (s *LedgerService) listIndex(ctx context.Context, account string, role models.MailRole) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.repomanager.MailIndex(s.db).List(ctx, account, role)
	if err != nil {
		return nil, fmt.Errorf("error listing %s mail: %w", role, err)
	}
	return ids, nil
}

// MaskAndClassifier reveals the stored mask and classifier of mailID to its
// sender or recipient. Unknown ids yield common.ErrorNotFound, any other
// caller common.ErrorUnauthorized.
func (s *LedgerService) MaskAndClassifier(ctx context.Context, call models.Call, mailID string) (*models.MailSecret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, err := s.repomanager.Mails(s.db).Get(ctx, mailID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.metrics.ObserveMaskQuery(metrics.ResultNotFound)
			return nil, common.ErrorNotFound
		}
		s.metrics.ObserveMaskQuery(metrics.ResultError)
		return nil, err
	}

	member, err := s.repomanager.MailIndex(s.db).Contains(ctx, call.Caller, mailID)
	if err != nil {
		s.metrics.ObserveMaskQuery(metrics.ResultError)
		return nil, err
	}
	if !member {
		s.metrics.ObserveMaskQuery(metrics.ResultUnauthorized)
		s.logger.Warn(ctx, "mask query by outsider", "mail_id", mailID, "caller", call.Caller)
		return nil, common.ErrorUnauthorized
	}

	s.metrics.ObserveMaskQuery(metrics.ResultOK)
	return &models.MailSecret{Mask: record.Mask, Classifier: record.Classifier}, nil
}

// AddContact appends account to the caller's contact list, creating the
// list on first use. Duplicates are kept.
func (s *LedgerService) AddContact(ctx context.Context, call models.Call, account string) (bool, error) {
	if call.Caller == "" || account == "" {
		return false, common.ErrorValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repomanager.Contacts(s.db).Append(ctx, call.Caller, account); err != nil {
		return false, fmt.Errorf("error adding contact: %w", err)
	}
	s.metrics.ObserveContactAdded()
	return true, nil
}

// Contacts returns the caller's contact list in insertion order.
func (s *LedgerService) Contacts(ctx context.Context, call models.Call) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.repomanager.Contacts(s.db).List(ctx, call.Caller)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return list, nil
}

// Tip moves amount from the contract to contact. The call must carry
// exactly amount as attached value; that value is deposited to the
// contract first. Any failure reverts every balance change of the call.
func (s *LedgerService) Tip(ctx context.Context, call models.Call, contact string, amount int64) (bool, error) {
	if call.Caller == "" || contact == "" || amount < 0 || call.Value < 0 {
		s.metrics.ObserveTip(metrics.ResultInvalid, amount)
		return false, common.ErrorValidation
	}
	if call.Value != amount {
		s.metrics.ObserveTip(metrics.ResultValueMismatch, amount)
		s.logger.Warn(ctx, "tip value mismatch", "caller", call.Caller, "amount", amount, "value", call.Value)
		return false, common.ErrorValueMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bank := chain.NewBank(s.repomanager.Balances(tx), s.contract, s.minContractBalance)

		if err := bank.Deposit(ctx, call.Caller, call.Value); err != nil {
			return err
		}

		balance, err := bank.ContractBalance(ctx)
		if err != nil {
			return err
		}
		if amount > balance {
			return common.ErrorInsufficientFunds
		}

		return bank.Transfer(ctx, bank.Contract(), contact, amount)
	})
	if err != nil {
		s.metrics.ObserveTip(tipResult(err), amount)
		s.logger.Warn(ctx, "tip aborted", "caller", call.Caller, "contact", contact, "amount", amount, "error", err)
		return false, err
	}

	s.metrics.ObserveTip(metrics.ResultOK, amount)
	s.logger.Info(ctx, "tip", "caller", call.Caller, "contact", contact, "amount", amount)
	return true, nil
}

func tipResult(err error) string {
	switch {
	case errors.Is(err, common.ErrorTransferFailed):
		return metrics.ResultTransferFailed
	case errors.Is(err, common.ErrorInsufficientFunds):
		return metrics.ResultInsufficientFunds
	default:
		return metrics.ResultError
	}
}

// RollingState returns the current rolling state.
func (s *LedgerService) RollingState(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repomanager.LedgerState(s.db).Get(ctx)
}

// Export copies the ledger tables in one read transaction.
func (s *LedgerService) Export(ctx context.Context) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &models.Snapshot{TakenAt: time.UnixMilli(s.clock.Now()).UTC()}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		code, err := s.repomanager.LedgerState(tx).Get(ctx)
		if err != nil {
			return err
		}
		snap.RollingState = []byte(code)

		records, err := s.repomanager.Mails(tx).All(ctx)
		if err != nil {
			return err
		}
		snap.Mails = make([]models.SnapshotMail, 0, len(records))
		for _, r := range records {
			snap.Mails = append(snap.Mails, models.NewSnapshotMail(r))
		}

		if snap.Index, err = s.repomanager.MailIndex(tx).All(ctx); err != nil {
			return err
		}
		snap.Contacts, err = s.repomanager.Contacts(tx).All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error exporting ledger: %w", err)
	}
	return snap, nil
}
