package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/permissioned_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/utils/pagination"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 500
	auditScanPageSize          = 1000
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accounts   portssvc.AccountReaderSvc
}

// NewLedgerService creates a new ledger service. The role reader must be supplied
// with WithRoleReader; without it every mutation fails authorization.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, accounts portssvc.AccountReaderSvc, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options...),
		ledgerRepo:  repo,
		accounts:    accounts,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordTransaction(ctx context.Context, caller domain.Principal, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	var recorded *domain.TransactionRecord
	err := s.Sequencer.Do(ctx, func() error {
		if req.Amount <= 0 {
			return fmt.Errorf("amount %d: %w", req.Amount, apperrors.ErrInvalidAmount)
		}
		if err := s.AuthorizeRole(ctx, caller, "recording transactions", domain.Role.CanRecordTransactions); err != nil {
			return err
		}

		record, err := s.buildRecord(ctx, caller, req)
		if err != nil {
			return err
		}

		stored, balances, err := s.ledgerRepo.AppendTransaction(ctx, *record)
		if err != nil {
			return err
		}
		recorded = stored

		// Published under the sequencer so sinks see records in log order
		event := *stored
		s.publish(ctx, domain.Event{
			Type:        domain.EventTransactionRecorded,
			Actor:       caller,
			Transaction: &event,
			Balances:    balances,
		})
		return nil
	})
	if err != nil {
		if !isLedgerRejection(err) {
			s.LogError(ctx, err, "Failed to record transaction",
				slog.String("type", string(req.Type)),
				slog.Int64("amount", req.Amount))
		} else {
			s.LogDebug(ctx, "Transaction rejected",
				slog.String("type", string(req.Type)),
				slog.String("reason", err.Error()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.Int64("transaction_id", recorded.TransactionID),
		slog.String("type", string(recorded.TransactionType)),
		slog.Int64("amount", recorded.Amount))
	return recorded, nil
}

// buildRecord runs the per-type checks and returns the record to append.
// It must be called while holding the sequencer.
func (s *ledgerService) buildRecord(ctx context.Context, caller domain.Principal, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	record := domain.TransactionRecord{
		TransactionType: req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		Timestamp:       s.Clock(),
		RecordedBy:      caller,
	}

	switch req.Type {
	case domain.Deposit:
		if req.ToAccountID == nil {
			return nil, fmt.Errorf("deposit requires a destination account: %w", apperrors.ErrValidation)
		}
		if err := s.requireActiveAccount(ctx, *req.ToAccountID); err != nil {
			return nil, err
		}
		if err := s.requireHeadroom(ctx, *req.ToAccountID, req.Amount); err != nil {
			return nil, err
		}
		to := *req.ToAccountID
		record.ToAccountID = &to

	case domain.Withdrawal:
		if req.FromAccountID == nil {
			return nil, fmt.Errorf("withdrawal requires a source account: %w", apperrors.ErrValidation)
		}
		from := *req.FromAccountID
		if err := s.requireActiveAccount(ctx, from); err != nil {
			return nil, err
		}
		if err := s.requireFunds(ctx, from, req.Amount); err != nil {
			return nil, err
		}
		record.FromAccountID = &from

	case domain.Transfer:
		if req.FromAccountID == nil || req.ToAccountID == nil {
			return nil, fmt.Errorf("transfer requires both accounts: %w", apperrors.ErrValidation)
		}
		from, to := *req.FromAccountID, *req.ToAccountID
		if from == to {
			return nil, fmt.Errorf("account %d: %w", from, apperrors.ErrSameAccount)
		}
		if err := s.requireActiveAccount(ctx, from); err != nil {
			return nil, err
		}
		if err := s.requireActiveAccount(ctx, to); err != nil {
			return nil, err
		}
		if err := s.requireFunds(ctx, from, req.Amount); err != nil {
			return nil, err
		}
		if err := s.requireHeadroom(ctx, to, req.Amount); err != nil {
			return nil, err
		}
		record.FromAccountID = &from
		record.ToAccountID = &to

	default:
		return nil, fmt.Errorf("unknown transaction type '%s': %w", req.Type, apperrors.ErrValidation)
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}
	return &record, nil
}

func (s *ledgerService) requireActiveAccount(ctx context.Context, accountID int64) error {
	exists, err := s.accounts.AccountExists(ctx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %d", apperrors.ErrAccountNotFound, accountID)
	}
	active, err := s.accounts.IsActive(ctx, accountID)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("account %d: %w", accountID, apperrors.ErrAccountInactive)
	}
	return nil
}

func (s *ledgerService) requireFunds(ctx context.Context, accountID int64, amount int64) error {
	balance, err := s.ledgerRepo.FindBalance(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to read balance of account %d: %w", accountID, err)
	}
	if balance < amount {
		return fmt.Errorf("account %d holds %d, needs %d: %w", accountID, balance, amount, apperrors.ErrInsufficientBalance)
	}
	return nil
}

// requireHeadroom rejects a credit the destination balance cannot hold.
func (s *ledgerService) requireHeadroom(ctx context.Context, accountID int64, amount int64) error {
	balance, err := s.ledgerRepo.FindBalance(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to read balance of account %d: %w", accountID, err)
	}
	if balance > math.MaxInt64-amount {
		return fmt.Errorf("account %d holds %d, cannot credit %d: %w", accountID, balance, amount, apperrors.ErrBalanceOverflow)
	}
	return nil
}

func (s *ledgerService) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	exists, err := s.accounts.AccountExists(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account existence", slog.Int64("account_id", accountID))
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %d", apperrors.ErrAccountNotFound, accountID)
	}
	balance, err := s.ledgerRepo.FindBalance(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read balance", slog.Int64("account_id", accountID))
		return 0, err
	}
	return balance, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID int64) (*domain.TransactionRecord, error) {
	if transactionID <= 0 {
		return nil, fmt.Errorf("transaction %d: %w", transactionID, apperrors.ErrNotFound)
	}
	record, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get transaction", slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}
	return record, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, caller domain.Principal, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	if err := s.AuthorizeRole(ctx, caller, "reading the audit trail", domain.Role.CanReadAuditTrail); err != nil {
		return nil, nil, err
	}

	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}

	var afterID int64
	if nextToken != nil && *nextToken != "" {
		decoded, err := pagination.DecodeTransactionCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
		}
		afterID = decoded
	}

	// Fetch one extra record to learn whether another page exists
	records, err := s.ledgerRepo.ListTransactions(ctx, filter, afterID, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, err
	}

	var next *string
	if len(records) > limit {
		records = records[:limit]
		token := pagination.EncodeTransactionCursor(records[len(records)-1].TransactionID)
		next = &token
	}
	return records, next, nil
}

func (s *ledgerService) AuditBalances(ctx context.Context, caller domain.Principal) (*domain.AuditReport, error) {
	if err := s.AuthorizeRole(ctx, caller, "auditing balances", domain.Role.CanAuditBalances); err != nil {
		return nil, err
	}

	var report *domain.AuditReport
	// Held so no transaction lands between the log scan and the balance read
	err := s.Sequencer.Do(ctx, func() error {
		computed := make(map[int64]int64)
		var count int
		var afterID int64
		for {
			page, err := s.ledgerRepo.ListTransactions(ctx, domain.TransactionFilter{}, afterID, auditScanPageSize)
			if err != nil {
				return fmt.Errorf("failed to scan transaction log: %w", err)
			}
			for _, record := range page {
				for accountID, delta := range record.BalanceChanges() {
					computed[accountID] += delta
				}
			}
			count += len(page)
			if len(page) < auditScanPageSize {
				break
			}
			afterID = page[len(page)-1].TransactionID
		}

		stored, err := s.ledgerRepo.ListBalances(ctx)
		if err != nil {
			return fmt.Errorf("failed to read balances: %w", err)
		}

		report = &domain.AuditReport{
			TransactionCount: count,
			CheckedAt:        s.Clock(),
		}
		report.AccountCount, report.Mismatches = compareBalances(stored, computed)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Balance audit failed")
		return nil, err
	}

	if report.Consistent() {
		s.LogInfo(ctx, "Balance audit passed",
			slog.Int("transactions", report.TransactionCount),
			slog.Int("accounts", report.AccountCount))
	} else {
		s.LogError(ctx, errors.New("stored balances diverge from the log"), "Balance audit found mismatches",
			slog.Int("mismatches", len(report.Mismatches)))
	}
	return report, nil
}

// compareBalances treats an absent entry as zero and returns mismatches ordered by account id.
func compareBalances(stored, computed map[int64]int64) (int, []domain.BalanceMismatch) {
	ids := make(map[int64]struct{}, len(stored)+len(computed))
	for id := range stored {
		ids[id] = struct{}{}
	}
	for id := range computed {
		ids[id] = struct{}{}
	}

	mismatches := []domain.BalanceMismatch{}
	for id := range ids {
		if stored[id] != computed[id] {
			mismatches = append(mismatches, domain.BalanceMismatch{AccountID: id, Stored: stored[id], Computed: computed[id]})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].AccountID < mismatches[j].AccountID })
	return len(ids), mismatches
}

// isLedgerRejection reports whether err is an expected business-rule rejection.
func isLedgerRejection(err error) bool {
	for _, target := range []error{
		apperrors.ErrInvalidAmount,
		apperrors.ErrUnauthorized,
		apperrors.ErrValidation,
		apperrors.ErrNotFound,
		apperrors.ErrAccountInactive,
		apperrors.ErrSameAccount,
		apperrors.ErrInsufficientBalance,
		apperrors.ErrBalanceOverflow,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
