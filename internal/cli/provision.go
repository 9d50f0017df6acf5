package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/advantage-qa/aos-e2e/internal/models"
	"github.com/advantage-qa/aos-e2e/internal/services"
)

// ProvisionOptions holds the provision command flags
type ProvisionOptions struct {
	Count     int
	Overrides models.AccountCreateParams
	JSON      bool
}

// AccountLister reads recorded provisioning attempts
type AccountLister interface {
	List(ctx context.Context, limit int) ([]*models.ProvisionedAccount, error)
}

// provisionOutput is one line of provision output
type provisionOutput struct {
	Success   bool               `json:"success"`
	AccountID string             `json:"accountId,omitempty"`
	LoginName string             `json:"loginName"`
	Email     string             `json:"email"`
	Password  string             `json:"password"`
	Kind      models.FailureKind `json:"kind,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// RunProvision creates opts.Count accounts and prints one line per attempt.
// It fails when any attempt failed.
func RunProvision(ctx context.Context, provisioner *services.Provisioner, opts ProvisionOptions, out io.Writer) error {
	results, err := provisioner.ProvisionMany(ctx, opts.Count, opts.Overrides)
	if err != nil {
		return err
	}

	rows := make([]provisionOutput, 0, len(results))
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
		rows = append(rows, provisionOutput{
			Success:   r.Success,
			AccountID: r.AccountID,
			LoginName: r.Params.LoginName,
			Email:     r.Params.Email,
			Password:  r.Params.Password,
			Kind:      r.Kind,
			Error:     r.Error,
		})
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "STATUS\tLOGIN\tEMAIL\tPASSWORD\tACCOUNT ID\tERROR")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				status(row.Success), row.LoginName, row.Email, row.Password, row.AccountID, row.Error)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d accounts failed", failed, len(results))
	}
	return nil
}

// RunAccounts prints the most recent recorded attempts
func RunAccounts(ctx context.Context, lister AccountLister, limit int, out io.Writer) error {
	accounts, err := lister.List(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tSTATUS\tLOGIN\tEMAIL\tACCOUNT ID\tERROR")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.CreatedAt.Format(time.RFC3339), status(a.Success), a.LoginName, a.Email, a.AccountID, a.Error)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	return nil
}

func status(success bool) string {
	if success {
		return "ok"
	}
	return "failed"
}
