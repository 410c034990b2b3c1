package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature_Golden(t *testing.T) {
	got := Signature("order_123", "pay_456", "s3cr3t")
	assert.Equal(t, "c2d339256f2b02c75a8f26b6ddfd7ab4882432420e82c49ea59757e7eeb81755", got)
	assert.Equal(t, got, Signature("order_123", "pay_456", "s3cr3t"))
}

func TestSignature_Format(t *testing.T) {
	sig := Signature("order_ABC", "pay_XYZ", "test_secret")
	assert.Equal(t, "15656b40fea6f2159b578efa459e969de9f5e223fb8a08393e274ac578d9d005", sig)
	assert.Len(t, sig, 64)
	assert.Equal(t, strings.ToLower(sig), sig)
}

func TestVerifySignature(t *testing.T) {
	const secret = "s3cr3t"
	valid := Signature("order_123", "pay_456", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"match", "order_123", "pay_456", valid, true},
		{"other payment", "order_123", "pay_457", valid, false},
		{"other order", "order_124", "pay_456", valid, false},
		{"uppercase hex", "order_123", "pay_456", strings.ToUpper(valid), false},
		{"padded", "order_123", "pay_456", " " + valid, false},
		{"empty", "order_123", "pay_456", "", false},
		{"untrimmed ids", " order_123", "pay_456", valid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(tt.orderID, tt.paymentID, tt.signature, secret))
		})
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := Signature("order_123", "pay_456", "s3cr3t")
	assert.False(t, VerifySignature("order_123", "pay_456", sig, "other"))
}
