// Package main demonstrates single-party signing and verification
package main

import (
	"crypto/ed25519"
	"fmt"
	"log"

	"github.com/Caqil/krypton/pkg/crypto/curve"
	"github.com/Caqil/krypton/pkg/crypto/rand"
	"github.com/Caqil/krypton/pkg/musig"
)

func main() {
	fmt.Println("=== Simple Signing Example ===")

	message := []byte("Transfer 100 NIM from Alice to Bob")
	fmt.Printf("Message: %s\n", message)

	for _, ct := range []curve.CurveType{curve.Secp256k1, curve.Ed25519} {
		fmt.Printf("\n--- %s ---\n", ct)

		engine, err := musig.NewEngine(ct)
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}

		// Phase 1: key generation
		secret, err := rand.GenerateRandomBytes(engine.Curve().SecretKeySize())
		if err != nil {
			log.Fatalf("Failed to generate secret key: %v", err)
		}
		pub, err := engine.PublicKey(secret, 0)
		if err != nil {
			log.Fatalf("Failed to derive public key: %v", err)
		}
		fmt.Printf("  ✓ Public Key: %x\n", pub)

		// Phase 2: signing
		sig, err := engine.Sign(message, pub, secret)
		if err != nil {
			log.Fatalf("Signing failed: %v", err)
		}
		fmt.Printf("  ✓ Signature R: %x\n", sig.Nonce())
		fmt.Printf("  ✓ Signature s: %x\n", sig.S())

		// Phase 3: verification
		if !engine.Verify(sig.Bytes(), message, pub) {
			log.Fatal("❌ Signature verification failed!")
		}
		fmt.Println("  ✓ Signature verified successfully!")

		if engine.Verify(sig.Bytes(), []byte("Transfer 900 NIM from Alice to Bob"), pub) {
			log.Fatal("❌ Tampered message was accepted!")
		}
		fmt.Println("  ✓ Tampered message rejected")

		if ct == curve.Ed25519 {
			if !ed25519.Verify(pub, message, sig.Bytes()) {
				log.Fatal("❌ crypto/ed25519 rejected the signature!")
			}
			fmt.Println("  ✓ crypto/ed25519 accepts the signature")
		}
	}

	fmt.Println("\n=== Signing Complete! ===")
}
