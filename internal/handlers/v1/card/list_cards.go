package card

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carteira-app/finance-server/internal/errdefs"
	"github.com/carteira-app/finance-server/internal/service"
	"github.com/carteira-app/finance-server/internal/storage/client"
	"github.com/carteira-app/finance-server/internal/storage/transaction"
)

// ListCardsBody is the request body for listing cards with activity.
type ListCardsBody struct {
	PlatformID string `json:"platformID" required:"true" doc:"External platform user identifier"`
	Month      string `json:"month,omitempty" doc:"Month to list activity for, YYYY-MM, defaults to the current month"`
}

// ListCardsInput is the Huma input for listing cards with activity.
type ListCardsInput struct {
	Body ListCardsBody
}

// CardActivity is the API response model for one card-linked transaction.
type CardActivity struct {
	TransactionID      int64  `json:"transactionID" doc:"Client-scoped sequence id"`
	Amount             string `json:"amount" doc:"Decimal amount"`
	Type               string `json:"type" doc:"Transaction type tag"`
	Description        string `json:"description,omitempty" doc:"Free-text description"`
	CategoryName       string `json:"categoryName,omitempty" doc:"Payment category name"`
	Date               string `json:"date" doc:"Effective date, YYYY-MM-DD"`
	InstallmentPayment bool   `json:"installmentPayment" doc:"Whether the row belongs to an installment plan"`
	InstallmentNumber  int    `json:"installmentNumber,omitempty" doc:"1-based installment index"`
}

// Card is the API response model for a card with its month's activity.
type Card struct {
	CardID     int64          `json:"cardID" doc:"Client-scoped card id"`
	Name       string         `json:"name" doc:"Card display name"`
	PaymentDay int            `json:"paymentDay" doc:"Monthly payment day"`
	Credit     []CardActivity `json:"credit" doc:"Credit-method transactions in the month"`
	Debit      []CardActivity `json:"debit" doc:"Debit-method transactions in the month"`
}

// ListCardsResponseBody is the response body for listing cards.
type ListCardsResponseBody struct {
	Cards []Card `json:"cards" doc:"Registered cards, oldest first"`
}

// ListCardsOutput is the Huma output for listing cards.
type ListCardsOutput struct {
	Body ListCardsResponseBody
}

// clientResolver is the interface for resolving a platform id to a client row.
type clientResolver interface {
	Info(ctx context.Context, platformID string) (*client.Client, error)
}

// cardLister is the interface for the card activity listing.
type cardLister interface {
	ListCardsWithActivity(ctx context.Context, clientID uuid.UUID, month time.Time) ([]*service.CardWithActivity, error)
}

// ListCardsHandler handles POST /v1/card/list.
type ListCardsHandler struct {
	ClientService clientResolver
	CardService   cardLister
}

// NewListCardsHandler creates a new ListCardsHandler.
func NewListCardsHandler(clients clientResolver, cards cardLister) *ListCardsHandler {
	return &ListCardsHandler{ClientService: clients, CardService: cards}
}

// Register registers the list cards endpoint with the Huma API.
func (h *ListCardsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cards",
		Method:      http.MethodPost,
		Path:        "/v1/card/list",
		Summary:     "List cards",
		Description: "Returns every registered card with its month's transactions split by payment-method tag.",
		Tags:        []string{"Cards"},
	}, h.handle)
}

func (h *ListCardsHandler) handle(ctx context.Context, input *ListCardsInput) (*ListCardsOutput, error) {
	month := time.Now()
	if input.Body.Month != "" {
		parsed, err := time.Parse("2006-01", input.Body.Month)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid month", err)
		}
		month = parsed
	}

	row, err := h.ClientService.Info(ctx, input.Body.PlatformID)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	cards, err := h.CardService.ListCardsWithActivity(ctx, row.ID, month)
	if err != nil {
		return nil, huma.NewError(errdefs.HTTPStatus(err), errdefs.PublicMessage(err), err)
	}

	body := ListCardsResponseBody{Cards: make([]Card, len(cards))}
	for i, entry := range cards {
		body.Cards[i] = Card{
			CardID:     entry.Card.CardID,
			Name:       entry.Card.Name,
			PaymentDay: entry.Card.PaymentDay,
			Credit:     convertActivity(entry.Credit),
			Debit:      convertActivity(entry.Debit),
		}
	}
	return &ListCardsOutput{Body: body}, nil
}

func convertActivity(rows []*transaction.CardActivity) []CardActivity {
	converted := make([]CardActivity, len(rows))
	for i, row := range rows {
		converted[i] = CardActivity{
			TransactionID:      row.SequenceID,
			Amount:             row.Amount.String(),
			Type:               row.Type,
			Description:        row.Description,
			CategoryName:       row.CategoryName,
			Date:               row.Date.Format("2006-01-02"),
			InstallmentPayment: row.InstallmentPayment,
			InstallmentNumber:  row.InstallmentNumber,
		}
	}
	return converted
}
