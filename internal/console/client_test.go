package console

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canulcua123-source/vista-boss/internal/domain/model"
)

func TestClient_GetUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/users" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Fatalf("missing bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []model.User{
				{ID: 1, Name: "Root", Email: "root@example.com", Role: model.RoleAdmin},
				{ID: 2, Name: "Maria", Email: "maria@example.com", Role: model.RoleMerchant},
			},
			"total": 2,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("token-123")
	users, err := client.GetUsers(context.Background())
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Root" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestClient_CreateUserSendsWireFieldNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["nombre"] != "John Doe" || body["rol"] != model.RoleMerchant {
			t.Fatalf("expected Spanish wire field names, got %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.User{ID: 7, Name: body["nombre"], Email: body["email"], Role: body["rol"]})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	user, err := client.CreateUser(context.Background(), model.NewUserInput{
		Name: "John Doe", Email: "john@example.com", Password: "secret1", Role: model.RoleMerchant,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("unexpected created user: %+v", user)
	}
}

func TestClient_DeleteUserNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/users/3" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := NewClient(server.URL).DeleteUser(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestClient_NonSuccessBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Admin access required"})
	}))
	defer server.Close()

	err := NewClient(server.URL).DeleteUser(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Message != "Admin access required" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	// The message-substring contract: the status digits are in the string.
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error string should carry the status digits: %q", err.Error())
	}
}

func TestClient_ValidationFieldsDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "validation failed",
			"fields": map[string]string{"nombre": "name must be at least 3 characters"},
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).CreateUser(context.Background(), model.NewUserInput{Name: "Jo"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Fields["nombre"] == "" {
		t.Fatalf("expected per-field messages, got %+v", apiErr)
	}
}
