package musig

import (
	"github.com/Caqil/krypton/internal/security"
)

// Verify reports whether sig is a valid signature on msg for pubkey. It
// accepts single-party signatures and combined multi-party signatures alike,
// the latter against the aggregate public key. Malformed input yields false.
func (e *Engine) Verify(sig, msg, pubkey []byte) bool {
	const op = "verify"
	c := e.curve

	if len(sig) != SignatureSize {
		e.reject(op, ErrInvalidSignature)
		return false
	}
	rEnc, sEnc := sig[:NonceSize], sig[NonceSize:]

	if err := c.CheckNonceEncoding(rEnc); err != nil {
		e.reject(op, err)
		return false
	}
	s, err := c.ParseScalar(sEnc)
	if err != nil {
		e.reject(op, err)
		return false
	}
	p, err := e.parsePublicKey(pubkey)
	if err != nil {
		e.reject(op, err)
		return false
	}

	// R' = s*G - e*P for the even-Y key. An odd-Y key signs as its negation,
	// so the sign of e flips.
	ch := c.Challenge(rEnc, c.HashEncoding(p), msg)
	if !c.HasOddY(p) {
		ch.Negate(ch)
	}

	r := c.NewPoint().ScalarBaseMult(s)
	r.Add(r, c.NewPoint().ScalarMult(ch, p))

	if r.IsIdentity() || c.HasOddY(r) {
		return false
	}
	return security.ConstantTimeCompare(c.HashEncoding(r), rEnc)
}
