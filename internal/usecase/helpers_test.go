package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// HTTPErrorのステータスとメッセージをまとめて確認する
func assertHTTPStatus(t *testing.T, err error, status int, message string) {
	t.Helper()

	assert.Error(t, err)
	he, ok := AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, status, he.Status)
	assert.Equal(t, message, he.Message)
}
