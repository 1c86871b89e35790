package main

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Caqil/krypton/pkg/logger"
)

const version = "v0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func logFailure(w io.Writer, err error) {
	log := logger.New(&logger.Config{Level: "error", Output: w, Pretty: true})
	log.ErrorEvent().Err(err).Msg("command failed")
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "krypton"
	app.Usage = "Delinearized multi-party Schnorr signatures over secp256k1 and Ed25519"
	app.Version = version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the TOML configuration file",
		},
		&cli.StringFlag{
			Name:  "curve",
			Usage: "the curve, secp256k1 or ed25519, overriding the configuration",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "the log level, overriding the configuration",
		},
	}
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		{
			Name:   "pubkey",
			Usage:  "Derive the public key of a secret key",
			Action: pubkeyCmd,
			Flags:  []cli.Flag{secretFlag(), sizeFlag()},
		},
		{
			Name:   "hash-pubkeys",
			Usage:  "Hash an ordered public key set",
			Action: hashPubkeysCmd,
			Flags:  []cli.Flag{pubkeysFlag(), sortFlag()},
		},
		{
			Name:   "delinearize",
			Usage:  "Delinearize one public key against a key set hash",
			Action: delinearizeCmd,
			Flags:  []cli.Flag{hashFlag(), pubkeyFlag(), sizeFlag()},
		},
		{
			Name:   "derive-seckey",
			Usage:  "Derive the delinearized secret key of a signer",
			Action: deriveSeckeyCmd,
			Flags:  []cli.Flag{hashFlag(), pubkeyFlag(), secretFlag()},
		},
		{
			Name:   "aggregate-pubkeys",
			Usage:  "Compute the aggregate public key of an ordered key set",
			Action: aggregatePubkeysCmd,
			Flags:  []cli.Flag{pubkeysFlag(), sortFlag(), sizeFlag()},
		},
		{
			Name:   "commit",
			Usage:  "Create a commitment and its secret nonce",
			Action: commitCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "randomness",
					Usage: "32 bytes of hex randomness, read from the system when empty",
				},
				sizeFlag(),
			},
		},
		{
			Name:   "aggregate-commitments",
			Usage:  "Sum the commitments of all signers",
			Action: aggregateCommitmentsCmd,
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:     "commitment",
					Usage:    "a hex commitment, repeated once per signer",
					Required: true,
				},
				sizeFlag(),
			},
		},
		{
			Name:   "partial-sign",
			Usage:  "Produce this signer's partial signature",
			Action: partialSignCmd,
			Flags: []cli.Flag{
				messageFlag(), textFlag(), pubkeysFlag(), secretFlag(),
				&cli.StringFlag{
					Name:     "signer",
					Usage:    "this signer's hex public key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "commitment",
					Usage:    "the hex aggregate commitment",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "nonce",
					Usage:    "this signer's hex secret nonce from the commit command",
					Required: true,
				},
			},
		},
		{
			Name:   "combine",
			Usage:  "Combine partial signatures into the final signature",
			Action: combineCmd,
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:     "partial",
					Usage:    "a hex partial signature, repeated once per signer",
					Required: true,
				},
			},
		},
		{
			Name:   "sign",
			Usage:  "Produce a single-party signature",
			Action: signCmd,
			Flags:  []cli.Flag{messageFlag(), textFlag(), pubkeyFlag(), secretFlag()},
		},
		{
			Name:   "verify",
			Usage:  "Verify a signature",
			Action: verifyCmd,
			Flags: []cli.Flag{
				messageFlag(), textFlag(), pubkeyFlag(),
				&cli.StringFlag{
					Name:     "signature",
					Usage:    "the hex signature",
					Required: true,
				},
			},
		},
		{
			Name:   "add-scalars",
			Usage:  "Add two scalars modulo the group order",
			Action: addScalarsCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "a", Usage: "the first hex scalar", Required: true},
				&cli.StringFlag{Name: "b", Usage: "the second hex scalar", Required: true},
			},
		},
		{
			Name:   "digest",
			Usage:  "Hash data with sha256, sha512, blake2b, ripemd160 or keccak256",
			Action: digestCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "alg", Value: "sha256", Usage: "the digest algorithm"},
				messageFlag(), textFlag(),
			},
		},
		{
			Name:   "kdf",
			Usage:  "Derive a key with Argon2",
			Action: kdfCmd,
			Flags: []cli.Flag{
				textFlag(), messageFlag(),
				&cli.StringFlag{Name: "salt", Usage: "the hex salt, the fixed single-shot salt when empty"},
				&cli.UintFlag{Name: "memory", Value: 512, Usage: "the memory cost in KiB"},
				&cli.UintFlag{Name: "iterations", Value: 1, Usage: "the number of passes"},
				&cli.UintFlag{Name: "length", Value: 32, Usage: "the output length"},
			},
		},
	}
	return app
}

func secretFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "secret",
		Aliases:  []string{"s"},
		Usage:    "the hex secret key",
		Required: true,
	}
}

func pubkeyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "pubkey",
		Aliases:  []string{"p"},
		Usage:    "the hex public key",
		Required: true,
	}
}

func pubkeysFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "pubkey",
		Aliases:  []string{"p"},
		Usage:    "a hex public key, repeated in key set order",
		Required: true,
	}
}

func sortFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "sort",
		Usage: "sort the keys lexicographically before hashing",
	}
}

func hashFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "hash",
		Usage:    "the hex key set hash from hash-pubkeys",
		Required: true,
	}
}

func sizeFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "size",
		Usage: "the output point encoding size, the engine default when zero",
	}
}

func messageFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "message",
		Aliases: []string{"m"},
		Usage:   "the hex message",
	}
}

func textFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "text",
		Usage: "the message as plain text",
	}
}
