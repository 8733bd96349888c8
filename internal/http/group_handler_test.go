package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
)

type mockGroupRepo struct {
	groups map[string]domain.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]domain.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group domain.Group) error {
	m.groups[group.ID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (domain.Group, error) {
	group, ok := m.groups[id]
	if !ok {
		return domain.Group{}, pgx.ErrNoRows
	}
	return group, nil
}

func (m *mockGroupRepo) GetByNameAndMember(_ context.Context, name, memberID string) (domain.Group, error) {
	for _, g := range m.groups {
		if g.Name == name && containsID(g.MemberIDs, memberID) {
			return g, nil
		}
	}
	return domain.Group{}, pgx.ErrNoRows
}

func (m *mockGroupRepo) ListByMember(_ context.Context, memberID string) ([]domain.Group, error) {
	var out []domain.Group
	for _, g := range m.groups {
		if containsID(g.MemberIDs, memberID) {
			out = append(out, g)
		}
	}
	return out, nil
}

type mockExpenseRepo struct {
	expenses map[string]domain.Expense
}

func newMockExpenseRepo() *mockExpenseRepo {
	return &mockExpenseRepo{expenses: make(map[string]domain.Expense)}
}

func (m *mockExpenseRepo) Create(_ context.Context, expense domain.Expense) error {
	m.expenses[expense.ID] = expense
	return nil
}

func (m *mockExpenseRepo) ListByGroup(_ context.Context, groupID string) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, e := range m.expenses {
		if e.GroupID != nil && *e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExpenseRepo) ListByUser(_ context.Context, userID string) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, e := range m.expenses {
		if e.PaidByID == userID || containsID(e.SharedWith, userID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockTransactionRepo struct {
	txs map[string]domain.Transaction
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{txs: make(map[string]domain.Transaction)}
}

func (m *mockTransactionRepo) Create(_ context.Context, tx domain.Transaction) error {
	m.txs[tx.ID] = tx
	return nil
}

func (m *mockTransactionRepo) GetByID(_ context.Context, id string) (domain.Transaction, error) {
	tx, ok := m.txs[id]
	if !ok {
		return domain.Transaction{}, pgx.ErrNoRows
	}
	return tx, nil
}

func (m *mockTransactionRepo) ListByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range m.txs {
		if tx.FromID == userID || tx.ToID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockTransactionRepo) MarkSettled(_ context.Context, id string) error {
	tx, ok := m.txs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tx.Status = domain.TransactionSettled
	m.txs[id] = tx
	return nil
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestGroupHandlerCreateGroup(t *testing.T) {
	env := setupEnv(t)
	registerAndVerify(t, env, "Ana", "a@x.com", "secret1")
	token := login(t, env, "a@x.com", "secret1")

	rec := performRequest(env.router, http.MethodPost, "/api/v1/groups", gin.H{
		"name": "Trip", "icon": "plane", "description": "summer trip",
	}, authHeader(token))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Same name again conflicts for the same member.
	rec = performRequest(env.router, http.MethodPost, "/api/v1/groups", gin.H{
		"name": "Trip", "icon": "plane",
	}, authHeader(token))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d", rec.Code)
	}
}

func TestGroupHandlerCreateGroup_Validation(t *testing.T) {
	env := setupEnv(t)
	registerAndVerify(t, env, "Ana", "a@x.com", "secret1")
	token := login(t, env, "a@x.com", "secret1")

	rec := performRequest(env.router, http.MethodPost, "/api/v1/groups", gin.H{
		"icon": "plane",
	}, authHeader(token))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without name, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodPost, "/api/v1/groups", gin.H{
		"name": "Trip",
	}, authHeader(token))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without icon, got %d", rec.Code)
	}
}

func TestGroupHandlerGetGroup_MembersOnly(t *testing.T) {
	env := setupEnv(t)
	registerAndVerify(t, env, "Ana", "a@x.com", "secret1")
	registerAndVerify(t, env, "Bob", "b@x.com", "secret2")
	anaToken := login(t, env, "a@x.com", "secret1")
	bobToken := login(t, env, "b@x.com", "secret2")

	rec := performRequest(env.router, http.MethodPost, "/api/v1/groups", gin.H{
		"name": "Trip", "icon": "plane",
	}, authHeader(anaToken))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: %d", rec.Code)
	}
	var body struct {
		Data struct {
			GroupID string `json:"groupId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = performRequest(env.router, http.MethodGet, "/api/v1/groups/"+body.Data.GroupID, nil, authHeader(anaToken))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for member, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodGet, "/api/v1/groups/"+body.Data.GroupID, nil, authHeader(bobToken))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member, got %d", rec.Code)
	}
}
