package actions

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/finance-server/internal/dates"
	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/storage"
	"github.com/carteira-app/finance-server/internal/storage/catalog"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// CreateTransaction inserts a transaction for the client, expanding an
// installment purchase into one dated row per installment. Every row of a
// plan shares one sequence id; the internal row id is a content hash with a
// per-installment suffix.
type CreateTransaction struct {
	PlatformID       string
	Amount           decimal.Decimal
	Type             string
	Timestamp        *time.Time
	MethodID         *int16
	CategoryID       *int16
	CardID           *int64
	Description      string
	Installment      bool
	InstallmentCount int

	Result CreatedTransaction

	IAction
}

// CreatedTransaction reflects the first inserted row of the plan plus the
// shared sequence id. LimitValue rides along when the category has a
// configured spending limit.
type CreatedTransaction struct {
	SequenceID       int64
	InternalID       string
	Amount           decimal.Decimal
	Timestamp        time.Time
	InstallmentCount int
	LimitValue       *decimal.Decimal
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := requireClient(ctx, writer, a.PlatformID)
	if err != nil {
		return err
	}
	if err := requireSubscription(row); err != nil {
		return err
	}

	if a.Type == "" {
		return errdefs.Validation("transaction type is required")
	}
	if a.Installment && a.InstallmentCount < 2 {
		return errdefs.Validation("installment count must be at least 2, got %d", a.InstallmentCount)
	}

	var method *catalog.Method
	if a.MethodID != nil {
		if method, err = writer.Catalog.MethodByID(ctx, *a.MethodID); err != nil {
			return err
		}
		if method == nil {
			return errdefs.Validation("unknown payment method %d", *a.MethodID)
		}
	}
	if a.CategoryID != nil {
		category, err := writer.Catalog.CategoryByID(ctx, *a.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return errdefs.Validation("unknown payment category %d", *a.CategoryID)
		}
	}

	timestamp := time.Now().UTC()
	if a.Timestamp != nil {
		timestamp = *a.Timestamp
	}
	if timestamp, err = a.applyBillingShift(ctx, writer, row.ID, method, timestamp); err != nil {
		return err
	}

	sequenceID, err := writer.Sequences.Next(ctx, row.ID, storage.ScopeTransaction)
	if err != nil {
		return err
	}

	baseHash := contentHash(row.ID, sequenceID, timestamp, a.Amount, a.MethodID, a.Description)

	count := 1
	if a.Installment {
		count = a.InstallmentCount
	}
	amounts := splitAmount(a.Amount, count)

	for i := 0; i < count; i++ {
		insert := &transaction.TransactionInsert{
			InternalID:         baseHash,
			SequenceID:         sequenceID,
			ClientID:           row.ID,
			Amount:             amounts[i],
			Type:               a.Type,
			MethodID:           a.MethodID,
			CategoryID:         a.CategoryID,
			CardID:             a.CardID,
			Description:        a.Description,
			Timestamp:          dates.AddMonthsClamped(timestamp, i),
			InstallmentPayment: a.Installment,
		}
		if a.Installment {
			insert.InternalID = fmt.Sprintf("%s:%d", baseHash, i+1)
			insert.InstallmentNumber = i + 1
			insert.InstallmentCount = count
		}
		if err := writer.Transactions.Insert(ctx, insert); err != nil {
			return err
		}

		if i == 0 {
			a.Result = CreatedTransaction{
				SequenceID:       sequenceID,
				InternalID:       insert.InternalID,
				Amount:           insert.Amount,
				Timestamp:        insert.Timestamp,
				InstallmentCount: insert.InstallmentCount,
			}
		}
	}

	if a.CategoryID != nil && a.Type == transaction.TypeExpense {
		configured, err := writer.Limits.Get(ctx, row.ID, *a.CategoryID)
		if err != nil {
			return err
		}
		if configured != nil {
			value := configured.Value
			a.Result.LimitValue = &value
		}
	}
	return nil
}

// applyBillingShift moves a credit purchase into the next billing cycle when
// the purchase day falls after the card's payment day.
func (a *CreateTransaction) applyBillingShift(ctx context.Context, writer *storage.Writer, clientID uuid.UUID, method *catalog.Method, timestamp time.Time) (time.Time, error) {
	if method == nil || method.Name != catalog.MethodNameCredit || a.CardID == nil {
		return timestamp, nil
	}

	card, err := writer.Cards.FindBySequenceID(ctx, clientID, *a.CardID)
	if err != nil {
		return timestamp, err
	}
	if card == nil {
		return timestamp, errdefs.Validation("unknown card %d", *a.CardID)
	}

	if timestamp.Day() > card.PaymentDay {
		return dates.AddMonthsClamped(timestamp, 1), nil
	}
	return timestamp, nil
}

// contentHash derives the opaque internal row id. The client-scoped sequence
// id is part of the input, so two purchases with identical content still get
// distinct primary keys.
func contentHash(clientID uuid.UUID, sequenceID int64, timestamp time.Time, amount decimal.Decimal, methodID *int16, description string) string {
	method := ""
	if methodID != nil {
		method = fmt.Sprintf("%d", *methodID)
	}
	sum := sha1.Sum(fmt.Appendf(nil, "%s:%d:%s:%s:%s:%s",
		clientID, sequenceID, timestamp.UTC().Format(time.RFC3339), amount.String(), method, description))
	return hex.EncodeToString(sum[:])
}

// splitAmount divides the total into count parts that sum back to it
// exactly. Every part but the last is the total over count rounded down to
// cents; the last part absorbs the remainder.
func splitAmount(total decimal.Decimal, count int) []decimal.Decimal {
	if count <= 1 {
		return []decimal.Decimal{total}
	}

	base := total.Div(decimal.NewFromInt(int64(count))).RoundDown(2)
	parts := make([]decimal.Decimal, count)
	for i := 0; i < count-1; i++ {
		parts[i] = base
	}
	parts[count-1] = total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))
	return parts
}
