package receipt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-receipt", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.OrderID)

		_ = json.NewEncoder(w).Encode(GenerateResponse{
			Success:  true,
			Filename: Filename(req.OrderID),
			Path:     "receipts/" + Filename(req.OrderID),
			OrderID:  req.OrderID,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	out, err := c.Generate(context.Background(), sampleRequest())
	assert.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "receipt-order-42.pdf", out.Filename)
}

func TestClient_Generate_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Generate(context.Background(), sampleRequest())
	assert.Error(t, err)
}
