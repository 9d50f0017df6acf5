package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Defaults for generated test accounts
const (
	DefaultTestPassword = "TestPass123"
	LoginNamePrefix     = "Sc"

	loginTokenLength          = 8
	defaultProvisionerWorkers = 4
)

// AccountStore records provisioning attempts
type AccountStore interface {
	Record(ctx context.Context, account *models.ProvisionedAccount) error
}

// Provisioner creates throwaway accounts for scenarios
type Provisioner struct {
	client  AccountClient
	store   AccountStore
	logger  *zap.Logger
	workers int
	now     func() time.Time
	token   func() string
}

// ProvisionerOption customizes a Provisioner
type ProvisionerOption func(*Provisioner)

// WithAccountStore records every attempt in store
func WithAccountStore(store AccountStore) ProvisionerOption {
	return func(p *Provisioner) {
		p.store = store
	}
}

// WithProvisionerLogger sets the provisioner logger
func WithProvisionerLogger(logger *zap.Logger) ProvisionerOption {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// WithWorkers bounds the number of concurrent calls made by ProvisionMany
func WithWorkers(n int) ProvisionerOption {
	return func(p *Provisioner) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewProvisioner creates a new provisioner on top of client
func NewProvisioner(client AccountClient, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		client:  client,
		logger:  zap.NewNop(),
		workers: defaultProvisionerWorkers,
		now:     time.Now,
		token:   randomToken,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// randomToken returns a lowercase hex token from a v4 uuid (crypto/rand)
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:loginTokenLength]
}

// DefaultParams generates a fresh account: timestamped email, random login
// name and the placeholder password.
func (p *Provisioner) DefaultParams() models.AccountCreateParams {
	token := p.token()
	return models.AccountCreateParams{
		Email:     fmt.Sprintf("testuser%d%s@example.com", p.now().UnixMilli(), token),
		LoginName: LoginNamePrefix + token,
		Password:  DefaultTestPassword,
	}
}

// Provision applies overrides on top of generated defaults, creates the
// account and returns the full result.
func (p *Provisioner) Provision(ctx context.Context, overrides models.AccountCreateParams) *models.AccountCreateResult {
	params := p.DefaultParams().Merge(overrides)
	result := p.client.CreateAccount(ctx, params)
	p.record(ctx, result)

	if result.Success {
		p.logger.Info("test account provisioned",
			zap.String("loginName", params.LoginName),
			zap.String("email", params.Email),
			zap.String("accountId", result.AccountID))
	} else {
		p.logger.Warn("test account provisioning failed",
			zap.String("loginName", params.LoginName),
			zap.String("kind", string(result.Kind)),
			zap.String("error", result.Error))
	}
	return result
}

// ProvisionTestAccount is the scenario setup shortcut: it returns the
// submitted parameters and whether creation succeeded.
func (p *Provisioner) ProvisionTestAccount(ctx context.Context, overrides models.AccountCreateParams) models.ProvisionedParams {
	result := p.Provision(ctx, overrides)
	return models.ProvisionedParams{
		AccountCreateParams: result.Params,
		Success:             result.Success,
	}
}

// ProvisionMany creates n independent accounts concurrently. Results keep
// request order. The returned error is only set for invalid arguments or a
// cancelled context; per-account failures stay in the results.
func (p *Provisioner) ProvisionMany(ctx context.Context, n int, overrides models.AccountCreateParams) ([]*models.AccountCreateResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("account count must be positive, got %d", n)
	}
	if n > 1 && (overrides.LoginName != "" || overrides.Email != "") {
		return nil, fmt.Errorf("login name and email overrides cannot be shared by %d accounts", n)
	}

	results := make([]*models.AccountCreateResult, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Provision(gctx, overrides)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("provisioning interrupted: %w", err)
	}
	return results, nil
}

func (p *Provisioner) record(ctx context.Context, result *models.AccountCreateResult) {
	if p.store == nil {
		return
	}
	if err := p.store.Record(ctx, models.NewProvisionedAccount(result)); err != nil {
		p.logger.Warn("failed to record provisioned account", zap.Error(err))
	}
}
