package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dquisbert/cartera/internal/models"
)

const pathTransactions = "/transactions/"

func (c *Client) CreateTransaction(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	var tx models.Transaction
	err := c.do(ctx, http.MethodPost, pathTransactions, create, &tx)
	return tx, err
}

// ListTransactions returns the user's transactions in server-determined order
func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := c.do(ctx, http.MethodGet, pathTransactions, nil, &txs)
	return txs, err
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	var tx models.Transaction
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d", pathTransactions, id), nil, &tx)
	return tx, err
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, update models.TransactionCreate) (models.Transaction, error) {
	var tx models.Transaction
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s%d", pathTransactions, id), update, &tx)
	return tx, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d", pathTransactions, id), nil, nil)
}
