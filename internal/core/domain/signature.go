package domain

import "time"

// ClientSignature is one client-side sign-off. Token is an opaque audit
// string, not a cryptographic proof.
type ClientSignature struct {
	UserID   string    `json:"userID"`
	SignedAt time.Time `json:"signedAt"`
	Token    string    `json:"signatureToken"`
}

// ClientSignatures is the ordered sign-off list of a transaction, unique by UserID.
type ClientSignatures []ClientSignature

// Has reports whether userID already signed.
func (s ClientSignatures) Has(userID string) bool {
	for _, sig := range s {
		if sig.UserID == userID {
			return true
		}
	}
	return false
}

// Append returns the list with sig added, or ErrAlreadySigned.
func (s ClientSignatures) Append(sig ClientSignature) (ClientSignatures, error) {
	if s.Has(sig.UserID) {
		return s, ErrAlreadySigned
	}
	out := make(ClientSignatures, len(s), len(s)+1)
	copy(out, s)
	return append(out, sig), nil
}

// Clone returns an independent copy.
func (s ClientSignatures) Clone() ClientSignatures {
	if s == nil {
		return nil
	}
	out := make(ClientSignatures, len(s))
	copy(out, s)
	return out
}
