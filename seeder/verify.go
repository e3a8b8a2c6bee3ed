package seeder

import (
	"context"
	"fmt"

	"github.com/Luisr26/ExpertSoft/models"
)

// Report is the post-load snapshot of what the database holds
type Report struct {
	Platforms                int64 `json:"platforms"`
	Clients                  int64 `json:"clients"`
	Invoices                 int64 `json:"invoices"`
	Transactions             int64 `json:"transactions"`
	ClientsWithTransactions  int64 `json:"clients_with_transactions"`
	PlatformsUsed            int64 `json:"platforms_used"`
	InvoicesWithTransactions int64 `json:"invoices_with_transactions"`
}

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type ReferenceCounter interface {
	Counter
	ReferenceCounts(ctx context.Context) (*models.TransactionReferences, error)
}

// Verifier issues read-only queries; it never changes data
type Verifier struct {
	platforms    Counter
	clients      Counter
	invoices     Counter
	transactions ReferenceCounter
}

func NewVerifier(platforms, clients, invoices Counter, transactions ReferenceCounter) *Verifier {
	return &Verifier{
		platforms:    platforms,
		clients:      clients,
		invoices:     invoices,
		transactions: transactions,
	}
}

// Verify runs the four table counts and then the distinct-reference query.
// The first failing query aborts the report.
func (v *Verifier) Verify(ctx context.Context) (*Report, error) {
	var report Report
	counts := []struct {
		entity string
		src    Counter
		dst    *int64
	}{
		{EntityPlatforms, v.platforms, &report.Platforms},
		{EntityClients, v.clients, &report.Clients},
		{EntityInvoices, v.invoices, &report.Invoices},
		{EntityTransactions, v.transactions, &report.Transactions},
	}
	for _, c := range counts {
		n, err := c.src.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.entity, err)
		}
		*c.dst = n
	}

	refs, err := v.transactions.ReferenceCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count transaction references: %w", err)
	}
	report.ClientsWithTransactions = refs.ClientsWithTransactions
	report.PlatformsUsed = refs.PlatformsUsed
	report.InvoicesWithTransactions = refs.InvoicesWithTransactions

	return &report, nil
}
