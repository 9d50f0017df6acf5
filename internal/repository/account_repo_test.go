package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/advantage-qa/aos-e2e/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccount() *models.ProvisionedAccount {
	return &models.ProvisionedAccount{
		ID:        "6f1c3a8e-0000-4000-8000-000000000001",
		LoginName: "Scabcd1234",
		Email:     "testuser1@example.com",
		Password:  "TestPass123",
		AccountID: "12345",
		Success:   true,
		CreatedAt: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

func accountRow(a *models.ProvisionedAccount) []driver.Value {
	return []driver.Value{a.ID, a.LoginName, a.Email, a.Password, a.AccountID, a.Success, a.Error, a.CreatedAt}
}

func TestAccountRepository_Record(t *testing.T) {
	tests := []struct {
		name        string
		driver      string
		placeholder string
	}{
		{name: "postgres placeholders", driver: config.LedgerPostgres, placeholder: `\$8`},
		{name: "sqlite placeholders", driver: config.LedgerSQLite, placeholder: `\?\)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			acct := sampleAccount()
			mock.ExpectExec(`INSERT INTO provisioned_accounts \(id,login_name,email,password,account_id,success,error,created_at\) VALUES .*` + tt.placeholder).
				WithArgs(accountRow(acct)...).
				WillReturnResult(sqlmock.NewResult(1, 1))

			repo := NewAccountRepository(db, tt.driver, nil)

			// WHEN
			err = repo.Record(context.Background(), acct)

			// THEN
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_RecordError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO provisioned_accounts").WillReturnError(errors.New("disk full"))

	repo := NewAccountRepository(db, config.LedgerPostgres, nil)
	err = repo.Record(context.Background(), sampleAccount())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record account")
}

func TestAccountRepository_List(t *testing.T) {
	// GIVEN
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	first := sampleAccount()
	second := sampleAccount()
	second.ID = "6f1c3a8e-0000-4000-8000-000000000002"
	second.LoginName = "Scffff0000"
	second.Success = false
	second.AccountID = ""
	second.Error = "HTTP 500: Internal Server Error"

	rows := sqlmock.NewRows(accountColumns).
		AddRow(accountRow(first)...).
		AddRow(accountRow(second)...)
	mock.ExpectQuery(regexp.QuoteMeta("FROM provisioned_accounts ORDER BY created_at DESC LIMIT 10")).
		WillReturnRows(rows)

	repo := NewAccountRepository(db, config.LedgerPostgres, nil)

	// WHEN
	accounts, err := repo.List(context.Background(), 10)

	// THEN
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, first, accounts[0])
	assert.Equal(t, second, accounts[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ListInvalidLimit(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(db, config.LedgerSQLite, nil)
	_, err = repo.List(context.Background(), 0)
	assert.Error(t, err)
}

func TestAccountRepository_ListQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM provisioned_accounts").WillReturnError(errors.New("connection lost"))

	repo := NewAccountRepository(db, config.LedgerPostgres, nil)
	_, err = repo.List(context.Background(), 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list accounts")
}

func TestAccountRepository_GetByLoginName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		acct := sampleAccount()
		mock.ExpectQuery(`FROM provisioned_accounts WHERE login_name = \$1 ORDER BY created_at DESC LIMIT 1`).
			WithArgs("Scabcd1234").
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow(acct)...))

		repo := NewAccountRepository(db, config.LedgerPostgres, nil)
		got, err := repo.GetByLoginName(context.Background(), "Scabcd1234")

		require.NoError(t, err)
		assert.Equal(t, acct, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM provisioned_accounts WHERE login_name = \?`).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		repo := NewAccountRepository(db, config.LedgerSQLite, nil)
		_, err = repo.GetByLoginName(context.Background(), "nobody")

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrAccountNotFound))
	})
}
