package utils

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

const signatureTokenPrefix = "SIG-"

// SignatureToken derives the audit token stored with a client signature.
// It identifies who signed what and when; it is not a cryptographic proof
// of consent and is never verified.
func SignatureToken(transactionID string, userID string, signedAt time.Time) string {
	sum := blake2b.Sum256([]byte(transactionID + "|" + userID + "|" + signedAt.UTC().Format(time.RFC3339Nano)))
	return signatureTokenPrefix + hex.EncodeToString(sum[:])[:32]
}
