// Package payment talks to the payment gateway and checks its completion signatures.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature is the gateway's checkout signature: lowercase hex of
// HMAC-SHA256(orderID + "|" + paymentID) keyed with the raw secret bytes.
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares with plain string equality. Inputs are used as given, without trimming.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	return Signature(orderID, paymentID, secret) == signature
}
