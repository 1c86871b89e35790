package hash

import (
	"golang.org/x/crypto/argon2"

	"github.com/Caqil/krypton/internal/security"
)

const (
	// DefaultArgon2Cost is the memory cost in KiB used when none is given
	DefaultArgon2Cost = 512

	// Argon2Size is the output length of Argon2Hash
	Argon2Size = 32
)

// argon2Salt is the fixed salt of the single-shot Argon2 hash
var argon2Salt = []byte("kryptonrock")

// KDFParams configures KDF
type KDFParams struct {
	// MemoryKiB is the Argon2 memory cost; zero selects DefaultArgon2Cost
	MemoryKiB uint32
	// Iterations is the Argon2 time cost; zero means one pass
	Iterations uint32
	// KeyLen is the output length in bytes
	KeyLen uint32
}

func (p KDFParams) normalized() KDFParams {
	if p.MemoryKiB == 0 {
		p.MemoryKiB = DefaultArgon2Cost
	}
	if p.Iterations == 0 {
		p.Iterations = 1
	}
	return p
}

// KDF stretches password with Argon2id under salt. Parallelism is fixed at 1.
func KDF(password, salt []byte, params KDFParams) ([]byte, error) {
	params = params.normalized()
	if params.KeyLen == 0 {
		return nil, ErrInvalidLength
	}
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}
	return argon2.IDKey(password, salt, params.Iterations, params.MemoryKiB, 1, params.KeyLen), nil
}

// Argon2Hash is the single-pass, fixed-salt 32-byte Argon2 digest of data.
// memoryKiB of zero selects DefaultArgon2Cost.
func Argon2Hash(data []byte, memoryKiB uint32) []byte {
	if memoryKiB == 0 {
		memoryKiB = DefaultArgon2Cost
	}
	return argon2.IDKey(data, argon2Salt, 1, memoryKiB, 1, Argon2Size)
}

// VerifyArgon2Hash recomputes Argon2Hash and compares it with expected
func VerifyArgon2Hash(expected, data []byte, memoryKiB uint32) bool {
	return security.ConstantTimeCompare(Argon2Hash(data, memoryKiB), expected)
}
