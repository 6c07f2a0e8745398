package usecase

import (
	"fmt"

	"quote_rollup/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// wonTotal accumulates positive amounts. Amounts without a currency are
// accepted as-is; two different non-empty currencies are an error.
type wonTotal struct {
	value        decimal.Decimal
	currency     string
	contributors int
}

func (t *wonTotal) add(q entities.Quote) error {
	amount, ok := q.Contribution()
	if !ok {
		return nil
	}
	if amount.Currency != "" {
		if t.currency == "" {
			t.currency = amount.Currency
		} else if t.currency != amount.Currency {
			return fmt.Errorf("%w: %s and %s (quote %s)", ErrCurrencyMismatch, t.currency, amount.Currency, q.ID)
		}
	}
	t.value = t.value.Add(amount.Value)
	t.contributors++
	return nil
}

// sumWonAmounts merges the queried Won siblings with the in-memory state of the
// triggering quote. The triggering quote is only added when its current status
// is Won; its stored copy must never appear among the siblings.
//
// The currency is left empty when no contributor carries one; the stored
// opportunity currency then stays as it is.
func sumWonAmounts(triggering entities.Quote, siblings []entities.Quote) (entities.Money, int, error) {
	total := wonTotal{value: decimal.Zero}
	for _, s := range siblings {
		if s.ID == triggering.ID {
			return entities.Money{}, 0, fmt.Errorf("%w: %s", ErrTriggeringQuoteInSiblings, s.ID)
		}
		if err := total.add(s); err != nil {
			return entities.Money{}, 0, err
		}
	}
	if triggering.IsWon() {
		if err := total.add(triggering); err != nil {
			return entities.Money{}, 0, err
		}
	}

	return entities.NewMoney(total.value, total.currency), total.contributors, nil
}
