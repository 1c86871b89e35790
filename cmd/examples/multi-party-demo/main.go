// Package main demonstrates a complete delinearized multi-party signing workflow
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/Caqil/krypton/pkg/crypto/commitment"
	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/crypto/rand"
	"github.com/Caqil/krypton/pkg/musig"
)

type party struct {
	name   string
	secret []byte
	pubkey []byte
	pair   *commitment.Pair
}

func main() {
	fmt.Println("=== Multi-Party Signing Demo: 3 signers ===")

	names := []string{"Alice", "Bob", "Charlie"}
	message := []byte("Pay 1.5 NIM from the shared wallet")

	for _, ct := range []curve.CurveType{curve.Secp256k1, curve.Ed25519} {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Printf("CURVE: %s\n", ct)
		fmt.Println(strings.Repeat("=", 50))

		engine, err := musig.NewEngine(ct)
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}
		runSession(engine, names, message)
	}

	fmt.Println("\n=== Demo Complete! ===")
}

func runSession(engine *musig.Engine, names []string, message []byte) {
	// Part 1: every party generates a key pair
	parties := make([]*party, len(names))
	pubkeys := make([][]byte, len(names))
	for i, name := range names {
		secret, err := rand.GenerateRandomBytes(engine.Curve().SecretKeySize())
		if err != nil {
			log.Fatalf("%s: key generation failed: %v", name, err)
		}
		pub, err := engine.PublicKey(secret, 0)
		if err != nil {
			log.Fatalf("%s: public key failed: %v", name, err)
		}
		parties[i] = &party{name: name, secret: secret, pubkey: pub}
		pubkeys[i] = pub
		fmt.Printf("  %s: public key %x...\n", name, pub[:8])
	}

	// Part 2: key aggregation over the agreed key order
	keySetHash, err := engine.HashPublicKeys(pubkeys)
	if err != nil {
		log.Fatalf("Key set hash failed: %v", err)
	}
	aggKey, err := engine.AggregateDelinearizedPublicKeys(keySetHash, pubkeys, 0)
	if err != nil {
		log.Fatalf("Key aggregation failed: %v", err)
	}
	fmt.Printf("✓ Key set hash: %x...\n", keySetHash[:16])
	fmt.Printf("✓ Aggregate public key: %x\n", aggKey)

	// Part 3: commitment round
	commitments := make([][]byte, len(parties))
	for i, p := range parties {
		p.pair, err = engine.GenerateCommitment()
		if err != nil {
			log.Fatalf("%s: commitment failed: %v", p.name, err)
		}
		commitments[i] = p.pair.Commitment
	}
	aggCommitment, err := engine.AggregateCommitments(commitments, 0)
	if err != nil {
		log.Fatalf("Commitment aggregation failed: %v", err)
	}
	fmt.Printf("✓ Aggregate commitment: %x\n", aggCommitment)

	// Part 4: partial signatures
	partials := make([]musig.PartialSignature, len(parties))
	for i, p := range parties {
		partials[i], err = engine.PartialSign(message, aggCommitment, p.pair.Nonce, pubkeys, p.pubkey, p.secret)
		if err != nil {
			log.Fatalf("%s: partial signing failed: %v", p.name, err)
		}
		fmt.Printf("  %s: partial s = %x...\n", p.name, partials[i].S()[:8])
	}

	// A nonce is single use
	if _, err := engine.PartialSign(message, aggCommitment, parties[0].pair.Nonce, pubkeys, parties[0].pubkey, parties[0].secret); err == nil {
		log.Fatal("❌ Nonce reuse was not detected!")
	}
	fmt.Println("✓ Nonce reuse rejected")

	// Part 5: combination and verification
	sig, err := engine.CombinePartialSignatures(partials)
	if err != nil {
		log.Fatalf("Combination failed: %v", err)
	}
	fmt.Printf("✓ Signature: %s\n", sig)

	if !engine.Verify(sig.Bytes(), message, aggKey) {
		log.Fatal("❌ Signature verification failed!")
	}
	fmt.Println("✓ Signature verified against the aggregate key")
}
