package request

import (
	"encoding/json"
	"errors"
	"testing"

	"quote_rollup/internal/domain/entities"
)

func TestMoneyRequest_ToMoney(t *testing.T) {
	var nilReq *MoneyRequest
	if m, err := nilReq.ToMoney(); m != nil || err != nil {
		t.Fatalf("expected nil money, got %v (%v)", m, err)
	}

	var r MoneyRequest
	if err := json.Unmarshal([]byte(`{"value":"125.50","currency":" usd "}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := r.ToMoney()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "125.5 USD" {
		t.Fatalf("expected 125.5 USD, got %s", m)
	}

	if err := json.Unmarshal([]byte(`{"value":-3}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.ToMoney(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateQuoteRequest_Resolve(t *testing.T) {
	s, err := CreateQuoteRequest{}.ResolveStatus()
	if err != nil || s != entities.QuoteStatusDraft {
		t.Fatalf("expected draft default, got %v (%v)", s, err)
	}
	if _, err := (CreateQuoteRequest{StatusCode: 99}).ResolveStatus(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	closed := 3
	st, err := CreateQuoteRequest{StateCode: &closed}.ResolveState()
	if err != nil || *st != entities.QuoteStateClosed {
		t.Fatalf("expected closed state, got %v (%v)", st, err)
	}
	bad := 9
	if _, err := (CreateQuoteRequest{StateCode: &bad}).ResolveState(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestChangeEventRequest_ToEvent(t *testing.T) {
	ev := ChangeEventRequest{MessageName: " Update ", EntityName: "quote", RecordID: " q-1 ", ChangedFields: []string{"statuscode"}}.ToEvent()
	if ev.RecordID != "q-1" || !ev.IsQuoteUpdate() || !ev.HasChanged(entities.QuoteAttrStatusCode) {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestUpdateAmountRequest_Unmarshal(t *testing.T) {
	t.Run("missing amount key", func(t *testing.T) {
		var r UpdateAmountRequest
		if err := json.Unmarshal([]byte(`{"value":"7"}`), &r); !errors.Is(err, ErrMissingAmount) {
			t.Fatalf("expected ErrMissingAmount, got %v", err)
		}
	})

	t.Run("explicit null clears", func(t *testing.T) {
		r := UpdateAmountRequest{Amount: &MoneyRequest{}}
		if err := json.Unmarshal([]byte(`{"amount": null}`), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Amount != nil {
			t.Fatalf("expected nil amount, got %+v", r.Amount)
		}
	})

	t.Run("amount value", func(t *testing.T) {
		var r UpdateAmountRequest
		if err := json.Unmarshal([]byte(`{"amount":{"value":"7.25","currency":"eur"}}`), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m, err := r.Amount.ToMoney()
		if err != nil || m.String() != "7.25 EUR" {
			t.Fatalf("expected 7.25 EUR, got %v (%v)", m, err)
		}
	})
}
