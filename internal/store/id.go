package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/amazing/internal/query"
)

// DomainQuery separates query keys from any other hash in the database.
const DomainQuery = "amazing/query/v1"

// IDGenerator generates unique run identifiers.
// Implemented by UUIDv7Generator (production) and testutil.SequenceGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// QueryKey computes the content-addressed identity of a request.
//
// Tokens are canonicalized with query.ParseToken, so "even" and "EVEN"
// share a key. Report queries ignore Count. The key is
// SHA256(domain + 0x00 + canonical form), hex encoded.
func QueryKey(q query.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%s\nnumber=%d\n", q.Mode(), q.Number)
	if q.Mode() == query.ModeScan {
		fmt.Fprintf(&b, "count=%d\n", q.Count)
		tokens := query.ParseTokens(q.Tokens)
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
		}
		fmt.Fprintf(&b, "tokens=%s\n", strings.Join(parts, " "))
	}
	return hashWithDomain(DomainQuery, []byte(b.String()))
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
