package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTransactionHandlerCreateAndSettle(t *testing.T) {
	env := setupEnv(t)
	registerAndVerify(t, env, "Ana", "a@x.com", "secret1")
	bobID := registerAndVerify(t, env, "Bob", "b@x.com", "secret2")
	anaToken := login(t, env, "a@x.com", "secret1")

	rec := performRequest(env.router, http.MethodPost, "/api/v1/transactions", gin.H{
		"to_id":  bobID,
		"amount": 25.0,
		"method": "upi",
	}, authHeader(anaToken))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Data struct {
			TransactionID string `json:"transactionId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = performRequest(env.router, http.MethodPatch, "/api/v1/transactions/"+body.Data.TransactionID+"/settle", nil, authHeader(anaToken))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Settled is terminal.
	rec = performRequest(env.router, http.MethodPatch, "/api/v1/transactions/"+body.Data.TransactionID+"/settle", nil, authHeader(anaToken))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for already settled, got %d", rec.Code)
	}
}

func TestTransactionHandlerCreate_Validation(t *testing.T) {
	env := setupEnv(t)
	anaID := registerAndVerify(t, env, "Ana", "a@x.com", "secret1")
	token := login(t, env, "a@x.com", "secret1")

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing recipient", gin.H{"amount": 10}},
		{"self payment", gin.H{"to_id": anaID, "amount": 10}},
		{"zero amount", gin.H{"to_id": "someone", "amount": 0}},
		{"bad method", gin.H{"to_id": "someone", "amount": 10, "method": "barter"}},
	}
	for _, tc := range cases {
		rec := performRequest(env.router, http.MethodPost, "/api/v1/transactions", tc.body, authHeader(token))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestTransactionHandlerSettle_PartiesOnly(t *testing.T) {
	env := setupEnv(t)
	registerAndVerify(t, env, "Ana", "a@x.com", "secret1")
	bobID := registerAndVerify(t, env, "Bob", "b@x.com", "secret2")
	registerAndVerify(t, env, "Eve", "e@x.com", "secret3")
	anaToken := login(t, env, "a@x.com", "secret1")
	eveToken := login(t, env, "e@x.com", "secret3")

	rec := performRequest(env.router, http.MethodPost, "/api/v1/transactions", gin.H{
		"to_id":  bobID,
		"amount": 25.0,
	}, authHeader(anaToken))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}
	var body struct {
		Data struct {
			TransactionID string `json:"transactionId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = performRequest(env.router, http.MethodPatch, "/api/v1/transactions/"+body.Data.TransactionID+"/settle", nil, authHeader(eveToken))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for third party, got %d", rec.Code)
	}
}
