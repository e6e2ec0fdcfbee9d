package counter

import (
	"context"
	"strconv"
	"time"

	"github.com/renilson-medeiros/lugo/internal/pkg/cache"
)

const (
	paymentsConfirmedKey = "billing:counters:payments_confirmed"
	receiptsIssuedKey    = "receipts:counters:issued"
)

func dayField(t time.Time) string {
	return t.Format("2006-01-02")
}

// AddConfirmedPayment increments the per-day confirmed payment counter in Redis
func AddConfirmedPayment(t time.Time) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, paymentsConfirmedKey, dayField(t), 1).Err()
}

// AddIssuedReceipt increments the per-day issued receipt counter in Redis
func AddIssuedReceipt(t time.Time) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, receiptsIssuedKey, dayField(t), 1).Err()
}

// ConfirmedPaymentsOn returns the confirmed payment count for a given day
func ConfirmedPaymentsOn(t time.Time) (int64, error) {
	ctx := context.Background()
	val, err := cache.GetClient().HGet(ctx, paymentsConfirmedKey, dayField(t)).Result()
	if err != nil {
		if err.Error() == "redis: nil" {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// IssuedReceiptsOn returns the issued receipt count for a given day
func IssuedReceiptsOn(t time.Time) (int64, error) {
	ctx := context.Background()
	val, err := cache.GetClient().HGet(ctx, receiptsIssuedKey, dayField(t)).Result()
	if err != nil {
		if err.Error() == "redis: nil" {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
