package transaction

import (
	"strings"
	"time"

	"github.com/timebudget/timebudget/internal/apperrors"
)

var ErrTransactionNotFound = apperrors.NotFound("Transaction")

// Transaction is time spent against a category.
type Transaction struct {
	Id         int
	Name       string
	Period     time.Duration
	DateTime   time.Time
	CategoryId int
}

func (t Transaction) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.Required("transaction_name")
	}
	if t.Period < 0 {
		return apperrors.Invalid("period", "period must not be negative.")
	}
	return nil
}
