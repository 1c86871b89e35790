package musig

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caqil/krypton/pkg/crypto/commitment"
	"github.com/Caqil/krypton/pkg/crypto/curve"
)

type signer struct {
	pub []byte
	sec []byte
}

func newTestEngine(t *testing.T, ct curve.CurveType, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(ct, opts...)
	require.NoError(t, err)
	return e
}

func bothEngines(t *testing.T) []*Engine {
	return []*Engine{
		newTestEngine(t, curve.Secp256k1),
		newTestEngine(t, curve.Ed25519),
	}
}

// seeded returns 32 reproducible bytes for a label
func seeded(label string, i int) []byte {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s/%d", label, i)))
	return sum[:]
}

func newSigner(t *testing.T, e *Engine, i int, size int) signer {
	t.Helper()
	sec := seeded("secret", i)
	pub, err := e.PublicKey(sec, size)
	require.NoError(t, err)
	return signer{pub: pub, sec: sec}
}

func newSigners(t *testing.T, e *Engine, n int) []signer {
	t.Helper()
	out := make([]signer, n)
	for i := range out {
		out[i] = newSigner(t, e, i, e.KeyEncoding())
	}
	return out
}

func publicKeys(signers []signer) [][]byte {
	out := make([][]byte, len(signers))
	for i, s := range signers {
		out[i] = s.pub
	}
	return out
}

// runProtocol performs both rounds for the signers in the given order and
// returns the combined signature and the aggregate key.
func runProtocol(t *testing.T, e *Engine, signers []signer, msg []byte, label string) (Signature, []byte) {
	t.Helper()

	pubkeys := publicKeys(signers)
	aggKey, err := e.AggregatePublicKeys(pubkeys, e.KeyEncoding())
	require.NoError(t, err)

	pairs := make([]*commitment.Pair, len(signers))
	commitments := make([][]byte, len(signers))
	for i := range signers {
		pairs[i], err = e.CreateCommitment(seeded(label, i), e.KeyEncoding())
		require.NoError(t, err)
		commitments[i] = pairs[i].Commitment
	}

	aggCommitment, err := e.AggregateCommitments(commitments, e.KeyEncoding())
	require.NoError(t, err)

	partials := make([]PartialSignature, len(signers))
	for i, s := range signers {
		partials[i], err = e.PartialSign(msg, aggCommitment, pairs[i].Nonce, pubkeys, s.pub, s.sec)
		require.NoError(t, err)
	}

	sig, err := e.CombinePartialSignatures(partials)
	require.NoError(t, err)
	return sig, aggKey
}

// permutations returns every ordering of 0..n-1
func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := 0; pos <= len(p); pos++ {
			perm := make([]int, 0, n)
			perm = append(perm, p[:pos]...)
			perm = append(perm, n-1)
			perm = append(perm, p[pos:]...)
			out = append(out, perm)
		}
	}
	return out
}
