package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/advantage-qa/aos-e2e/internal/models"
	"go.uber.org/zap"
)

const accountsTable = "provisioned_accounts"

var accountColumns = []string{
	"id", "login_name", "email", "password", "account_id", "success", "error", "created_at",
}

// AccountRepository handles database operations for provisioned accounts
type AccountRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *zap.Logger
}

// NewAccountRepository creates a new account repository. driver selects the
// placeholder format.
func NewAccountRepository(db *sql.DB, driver string, logger *zap.Logger) *AccountRepository {
	var format sq.PlaceholderFormat = sq.Question
	if driver == config.LedgerPostgres {
		format = sq.Dollar
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(format),
		logger:  logger,
	}
}

// Record inserts one provisioning attempt
func (r *AccountRepository) Record(ctx context.Context, account *models.ProvisionedAccount) error {
	query, args, err := r.builder.
		Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			account.ID,
			account.LoginName,
			account.Email,
			account.Password,
			account.AccountID,
			account.Success,
			account.Error,
			account.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record account: %w", err)
	}

	r.logger.Debug("provisioned account recorded", zap.String("id", account.ID), zap.String("loginName", account.LoginName))
	return nil
}

// List returns the most recent attempts, newest first
func (r *AccountRepository) List(ctx context.Context, limit int) ([]*models.ProvisionedAccount, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query, args, err := r.builder.
		Select(accountColumns...).
		From(accountsTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.ProvisionedAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// GetByLoginName returns the latest attempt for a login name
func (r *AccountRepository) GetByLoginName(ctx context.Context, loginName string) (*models.ProvisionedAccount, error) {
	query, args, err := r.builder.
		Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"login_name": loginName}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrAccountNotFound, loginName)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.ProvisionedAccount, error) {
	account := &models.ProvisionedAccount{}
	err := row.Scan(
		&account.ID,
		&account.LoginName,
		&account.Email,
		&account.Password,
		&account.AccountID,
		&account.Success,
		&account.Error,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return account, nil
}
