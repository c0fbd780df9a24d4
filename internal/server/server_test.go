package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/famshare/famshare/internal/auth"
	"github.com/famshare/famshare/internal/storage/sqlite"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "famshare-server-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", 30*time.Minute)
	return New(store, jwtManager).Handler()
}

// doJSON performs a request and decodes the JSON response into out, if out
// is non-nil.
func doJSON(t *testing.T, handler http.Handler, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
	}
	return rec.Code
}

// bootstrap creates a family with the named members and returns the family
// ID, the member responses and a bearer token per member.
func bootstrap(t *testing.T, handler http.Handler, names ...string) (string, []memberResponse, []string) {
	t.Helper()

	var family familyResponse
	if code := doJSON(t, handler, "POST", "/families", "", map[string]string{"name": "Testers"}, &family); code != http.StatusCreated {
		t.Fatalf("create family: status %d", code)
	}

	var members []memberResponse
	var tokens []string
	for _, name := range names {
		var member memberResponse
		code := doJSON(t, handler, "POST", "/members", "", map[string]string{
			"family_id":   family.ID,
			"name":        name,
			"platform_id": "tg-" + name,
		}, &member)
		if code != http.StatusCreated {
			t.Fatalf("join %s: status %d", name, code)
		}
		members = append(members, member)

		var tok tokenResponse
		code = doJSON(t, handler, "POST", "/auth/token", "", map[string]string{"platform_id": "tg-" + name}, &tok)
		if code != http.StatusOK {
			t.Fatalf("token for %s: status %d", name, code)
		}
		tokens = append(tokens, tok.AccessToken)
	}
	return family.ID, members, tokens
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestServer(t)

	if code := doJSON(t, handler, "GET", "/healthz", "", nil, nil); code != http.StatusOK {
		t.Errorf("healthz: status %d, want 200", code)
	}
	if code := doJSON(t, handler, "GET", "/readyz", "", nil, nil); code != http.StatusOK {
		t.Errorf("readyz: status %d, want 200", code)
	}
	if code := doJSON(t, handler, "GET", "/metrics", "", nil, nil); code != http.StatusOK {
		t.Errorf("metrics: status %d, want 200", code)
	}
}

func TestAuthRequired(t *testing.T) {
	handler := newTestServer(t)
	familyID, members, _ := bootstrap(t, handler, "Alice")

	paths := []string{
		"/families/" + familyID,
		"/families/" + familyID + "/balances",
		"/members/" + members[0].ID,
	}
	for _, path := range paths {
		if code := doJSON(t, handler, "GET", path, "", nil, nil); code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, code)
		}
		if code := doJSON(t, handler, "GET", path, "garbage-token", nil, nil); code != http.StatusUnauthorized {
			t.Errorf("GET %s with bad token: status %d, want 401", path, code)
		}
	}
}

func TestTokenForUnknownPlatformID(t *testing.T) {
	handler := newTestServer(t)

	code := doJSON(t, handler, "POST", "/auth/token", "", map[string]string{"platform_id": "tg-nobody"}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", code)
	}
}

func TestFamilyScopeIsEnforced(t *testing.T) {
	handler := newTestServer(t)
	familyID, members, _ := bootstrap(t, handler, "Alice")
	_, _, otherTokens := bootstrap(t, handler, "Mallory")

	paths := []string{
		"/families/" + familyID,
		"/families/" + familyID + "/members",
		"/families/" + familyID + "/balances",
		"/members/" + members[0].ID,
	}
	for _, path := range paths {
		if code := doJSON(t, handler, "GET", path, otherTokens[0], nil, nil); code != http.StatusForbidden {
			t.Errorf("GET %s with foreign token: status %d, want 403", path, code)
		}
	}
}

func TestExpenseAndBalanceFlow(t *testing.T) {
	handler := newTestServer(t)
	familyID, members, tokens := bootstrap(t, handler, "Alice", "Bob")
	alice, bob := members[0], members[1]
	aliceToken, bobToken := tokens[0], tokens[1]

	// Alice fronts 100 split equally.
	var expense expenseResponse
	code := doJSON(t, handler, "POST", "/expenses", aliceToken, map[string]any{
		"description": "Groceries",
		"amount":      "100",
	}, &expense)
	if code != http.StatusCreated {
		t.Fatalf("create expense: status %d", code)
	}
	if expense.PaidBy != alice.ID {
		t.Errorf("paid_by = %s, want the caller %s", expense.PaidBy, alice.ID)
	}
	if len(expense.Splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(expense.Splits))
	}

	t.Run("mismatched splits are rejected", func(t *testing.T) {
		code := doJSON(t, handler, "POST", "/expenses", aliceToken, map[string]any{
			"description": "Oops",
			"amount":      "100",
			"splits": []map[string]string{
				{"member_id": alice.ID, "amount": "45"},
				{"member_id": bob.ID, "amount": "45"},
			},
		}, nil)
		if code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", code)
		}
	})

	t.Run("member balance reflects the split", func(t *testing.T) {
		var mb memberBalanceResponse
		if code := doJSON(t, handler, "GET", "/members/"+bob.ID+"/balance", bobToken, nil, &mb); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if mb.NetBalance.String() != "-50" {
			t.Errorf("bob net = %s, want -50", mb.NetBalance)
		}
		if len(mb.Debts) != 1 || mb.Debts[0].MemberID != alice.ID {
			t.Errorf("bob debts = %v, want one entry to alice", mb.Debts)
		}
	})

	t.Run("pairwise view", func(t *testing.T) {
		var pairs []pairResponse
		if code := doJSON(t, handler, "GET", "/families/"+familyID+"/balances/pairwise", aliceToken, nil, &pairs); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if len(pairs) != 1 {
			t.Fatalf("got %d pairs, want 1", len(pairs))
		}
		if pairs[0].FromMemberID != bob.ID || pairs[0].ToMemberID != alice.ID {
			t.Errorf("pair %s -> %s, want bob -> alice", pairs[0].FromName, pairs[0].ToName)
		}
	})

	t.Run("delete returns balances to zero", func(t *testing.T) {
		if code := doJSON(t, handler, "DELETE", "/expenses/"+expense.ID, aliceToken, nil, nil); code != http.StatusNoContent {
			t.Fatalf("delete: status %d", code)
		}
		var pairs []pairResponse
		if code := doJSON(t, handler, "GET", "/families/"+familyID+"/balances/pairwise", aliceToken, nil, &pairs); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if len(pairs) != 0 {
			t.Errorf("got %d pairs after delete, want 0", len(pairs))
		}
	})
}

func TestPaymentConfirmationFlow(t *testing.T) {
	handler := newTestServer(t)
	familyID, members, tokens := bootstrap(t, handler, "Alice", "Bob")
	alice, bob := members[0], members[1]
	aliceToken, bobToken := tokens[0], tokens[1]

	code := doJSON(t, handler, "POST", "/expenses", aliceToken, map[string]any{
		"description": "Rent",
		"amount":      "100",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("create expense: status %d", code)
	}

	// Bob records a payment back to Alice; it starts pending.
	var payment paymentResponse
	code = doJSON(t, handler, "POST", "/payments", bobToken, map[string]string{
		"to_member_id": alice.ID,
		"amount":       "30",
	}, &payment)
	if code != http.StatusCreated {
		t.Fatalf("create payment: status %d", code)
	}
	if payment.Status != "PENDING" {
		t.Errorf("status = %s, want PENDING", payment.Status)
	}
	if payment.FromMemberID != bob.ID {
		t.Errorf("from = %s, want the caller %s", payment.FromMemberID, bob.ID)
	}

	t.Run("pending payment is listed and inert", func(t *testing.T) {
		var pending []paymentResponse
		if code := doJSON(t, handler, "GET", "/families/"+familyID+"/payments/pending", aliceToken, nil, &pending); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if len(pending) != 1 {
			t.Fatalf("got %d pending payments, want 1", len(pending))
		}

		var mb memberBalanceResponse
		if code := doJSON(t, handler, "GET", "/members/"+bob.ID+"/balance", bobToken, nil, &mb); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if mb.NetBalance.String() != "-50" {
			t.Errorf("bob net = %s, want -50 while pending", mb.NetBalance)
		}
	})

	t.Run("only the recipient may confirm", func(t *testing.T) {
		code := doJSON(t, handler, "PATCH", "/payments/"+payment.ID+"/status", bobToken,
			map[string]string{"status": "CONFIRM"}, nil)
		if code != http.StatusForbidden {
			t.Errorf("sender confirm: status %d, want 403", code)
		}

		code = doJSON(t, handler, "PATCH", "/payments/"+payment.ID+"/status", aliceToken,
			map[string]string{"status": "CONFIRM"}, nil)
		if code != http.StatusOK {
			t.Fatalf("recipient confirm: status %d, want 200", code)
		}

		var mb memberBalanceResponse
		if code := doJSON(t, handler, "GET", "/members/"+bob.ID+"/balance", bobToken, nil, &mb); code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if mb.NetBalance.String() != "-20" {
			t.Errorf("bob net = %s, want -20 after confirm", mb.NetBalance)
		}
	})

	t.Run("invalid transition conflicts", func(t *testing.T) {
		code := doJSON(t, handler, "PATCH", "/payments/"+payment.ID+"/status", bobToken,
			map[string]string{"status": "PENDING"}, nil)
		if code != http.StatusConflict {
			t.Errorf("status %d, want 409", code)
		}
	})
}

func TestDeleteMemberConflict(t *testing.T) {
	handler := newTestServer(t)
	_, members, tokens := bootstrap(t, handler, "Alice", "Bob")
	bob := members[1]
	aliceToken := tokens[0]

	var expense expenseResponse
	code := doJSON(t, handler, "POST", "/expenses", aliceToken, map[string]any{
		"description": "Dinner",
		"amount":      "40",
	}, &expense)
	if code != http.StatusCreated {
		t.Fatalf("create expense: status %d", code)
	}

	if code := doJSON(t, handler, "DELETE", "/members/"+bob.ID, aliceToken, nil, nil); code != http.StatusConflict {
		t.Errorf("delete referenced member: status %d, want 409", code)
	}

	if code := doJSON(t, handler, "DELETE", "/expenses/"+expense.ID, aliceToken, nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete expense: status %d", code)
	}
	if code := doJSON(t, handler, "DELETE", "/members/"+bob.ID, aliceToken, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete unreferenced member: status %d, want 204", code)
	}
}

func TestUpdateLanguage(t *testing.T) {
	handler := newTestServer(t)
	_, members, tokens := bootstrap(t, handler, "Alice")
	alice := members[0]

	var updated memberResponse
	code := doJSON(t, handler, "PATCH", fmt.Sprintf("/members/%s/language", alice.ID), tokens[0],
		map[string]string{"language": "ES"}, &updated)
	if code != http.StatusOK {
		t.Fatalf("status %d, want 200", code)
	}
	if updated.Language != "ES" {
		t.Errorf("language = %s, want ES", updated.Language)
	}

	code = doJSON(t, handler, "PATCH", fmt.Sprintf("/members/%s/language", alice.ID), tokens[0],
		map[string]string{"language": "XX"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("unknown language: status %d, want 400", code)
	}
}
