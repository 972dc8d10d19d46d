package security

import "golang.org/x/crypto/bcrypt"

// bcrypt reads at most this many bytes of the plaintext.
const maxPasswordBytes = 72

// Hasher produces salted bcrypt digests. The salt is random per call and
// embedded in the digest, so hashing the same password twice gives two
// different digests that both verify.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify never errors on a mismatch; a malformed digest also reports false.
// Plaintexts bcrypt would truncate never verify, since Hash refuses them.
func (h *Hasher) Verify(hash, plain string) bool {
	if len(plain) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
