// Package transactions is a thin passthrough to the transactions service.
// No caching, no ordering, no retries: every call maps to exactly one
// backend request and the server decides the listing order.
package transactions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dquisbert/cartera/internal/models"
)

type transactionsAPI interface {
	CreateTransaction(ctx context.Context, create models.TransactionCreate) (models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, update models.TransactionCreate) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

type Service struct {
	api transactionsAPI
}

func NewService(api transactionsAPI) *Service {
	return &Service{api: api}
}

func (s *Service) Create(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	return s.api.CreateTransaction(ctx, create)
}

func (s *Service) List(ctx context.Context) ([]models.Transaction, error) {
	return s.api.ListTransactions(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.Transaction, error) {
	return s.api.GetTransaction(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, update models.TransactionCreate) (models.Transaction, error) {
	return s.api.UpdateTransaction(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteTransaction(ctx, id)
}

// NetMovement sums the listed transactions from the point of view of the
// given account: credits count positive, debits negative. Used by the
// dashboard balance line.
func NetMovement(txs []models.Transaction, account string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Incoming(account) {
			total = total.Add(tx.Amount)
		} else {
			total = total.Sub(tx.Amount)
		}
	}
	return total
}
