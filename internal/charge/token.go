package charge

import (
	"math/rand"

	"github.com/google/uuid"
)

// externalIDPrefix namespaces the idempotency tokens this integration
// sends to Wave, so they are recognisable among externalIds from other
// sources.
const externalIDPrefix = "uid:"

const (
	tokenLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tokenDigits  = "0123456789"
	tokenLength  = 5
)

// ExternalIDFunc produces the externalId sent with each money
// transaction. Injectable so integrations can swap in their own scheme.
type ExternalIDFunc func() string

// NewExternalID generates the default external identifier: the "uid:"
// prefix followed by five characters alternating between uppercase
// letters and digits (letter, digit, letter, digit, letter).
//
// Known weakness: the alphabet yields only 26*10*26*10*26 = 1,757,600
// distinct tokens, so collisions across a long-lived ledger are a real
// possibility. Wave's deduplication semantics for repeated externalId
// values are undocumented, so the token is kept as a best-effort hint
// rather than silently strengthened. Use UUIDExternalID if you want a
// collision-resistant scheme and have verified how Wave treats it.
func NewExternalID() string {
	token := make([]byte, tokenLength)
	for i := range token {
		if i%2 == 0 {
			token[i] = tokenLetters[rand.Intn(len(tokenLetters))]
		} else {
			token[i] = tokenDigits[rand.Intn(len(tokenDigits))]
		}
	}

	return externalIDPrefix + string(token)
}

// UUIDExternalID is an alternative ExternalIDFunc backed by a random
// UUID.
func UUIDExternalID() string {
	return externalIDPrefix + uuid.NewString()
}
