package errdefs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindClientNotExists, KindOf(ClientNotExists("tg-1")))
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindEmptyResult, KindOf(EmptyResult()))

	// Anything that is not a domain error classifies as a store error.
	assert.Equal(t, KindStore, KindOf(errors.New("connection refused")))
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("perform: %w", TransactionNotExists(3, "abc"))
	assert.Equal(t, KindTransactionNotExists, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindTransactionNotExists))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ClientNotExists("tg-1")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(TransactionNotExists(1, "abc")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(EmptyResult()))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(SubscriptionInactive("abc")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(Store(errors.New("down"))))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(errors.New("raw")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, `client "tg-1" not found`, PublicMessage(ClientNotExists("tg-1")))

	// Store errors never leak the underlying message.
	public := PublicMessage(Store(errors.New("pq: relation does not exist")))
	assert.Equal(t, "database error, check the request", public)
	assert.NotContains(t, public, "pq")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial timeout")
	err := Store(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "dial timeout")
}
