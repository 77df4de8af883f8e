package mongo

import (
	"errors"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/money"
)

// ErrConcurrentUpdate reports a lost optimistic-version race.
var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

func newMoneyDocument(m money.Money) moneyDocument {
	return moneyDocument{Amount: m.Amount, Currency: m.Currency}
}

func (d moneyDocument) toMoney() money.Money {
	return money.Money{Amount: d.Amount, Currency: d.Currency}
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
