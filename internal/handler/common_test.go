package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"
)

const testJWTSecret = "handler-test-secret"

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func issueTestToken(t *testing.T, claims model.Claims) string {
	t.Helper()
	token, err := auth.IssueToken(testJWTSecret, time.Hour, claims)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	return issueTestToken(t, model.Claims{
		Subject: "admin",
		Role:    model.RoleAdmin,
		Access:  model.AccessAll,
	})
}

func vendorEventToken(t *testing.T, eventID int) string {
	t.Helper()
	return issueTestToken(t, model.Claims{
		Subject: "vendor",
		Role:    model.RoleVendor,
		Access:  model.AccessEvent,
		EventID: &eventID,
	})
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
