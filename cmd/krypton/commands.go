package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Caqil/krypton/internal/security"
	"github.com/Caqil/krypton/pkg/config"
	"github.com/Caqil/krypton/pkg/crypto/commitment"
	"github.com/Caqil/krypton/pkg/crypto/hash"
	"github.com/Caqil/krypton/pkg/crypto/rand"
	"github.com/Caqil/krypton/pkg/logger"
	"github.com/Caqil/krypton/pkg/musig"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if file := c.String("config"); file != "" {
		loaded, err := config.Load(file)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if name := c.String("curve"); name != "" {
		cfg.Engine.Curve = name
		cfg.Engine.KeyEncoding = 0
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, cfg.Validate()
}

// newLogger builds the configured logger writing to the app's error stream
func newLogger(c *cli.Context, cfg *config.Config) *logger.Logger {
	lc := cfg.LoggerConfig()
	lc.Output = c.App.ErrWriter
	return logger.New(lc)
}

func newEngine(c *cli.Context) (*musig.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log := newLogger(c, cfg)
	if file := c.String("config"); file != "" {
		log.InfoEvent().Str("file", file).Str("curve", cfg.Engine.Curve).Msg("configuration loaded")
	}
	return cfg.NewEngine(musig.WithLogger(log))
}

func decodeHex(name, value string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return b, nil
}

func hexFlag(c *cli.Context, name string) ([]byte, error) {
	return decodeHex(name, c.String(name))
}

func hexSliceFlag(c *cli.Context, name string) ([][]byte, error) {
	values := c.StringSlice(name)
	out := make([][]byte, len(values))
	for i, v := range values {
		b, err := decodeHex(name, v)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func pubkeysInput(c *cli.Context) ([][]byte, error) {
	pubkeys, err := hexSliceFlag(c, "pubkey")
	if err != nil {
		return nil, err
	}
	if c.Bool("sort") {
		pubkeys = musig.SortPublicKeys(pubkeys)
	}
	return pubkeys, nil
}

func messageInput(c *cli.Context) ([]byte, error) {
	if c.IsSet("text") {
		return []byte(c.String("text")), nil
	}
	return hexFlag(c, "message")
}

func outputSize(c *cli.Context, e *musig.Engine) int {
	if size := c.Int("size"); size != 0 {
		return size
	}
	return e.KeyEncoding()
}

func printJSON(c *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}

func pubkeyCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	sec, err := hexFlag(c, "secret")
	if err != nil {
		return err
	}
	pub, err := e.PublicKey(sec, outputSize(c, e))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(pub))
	return nil
}

func hashPubkeysCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	pubkeys, err := pubkeysInput(c)
	if err != nil {
		return err
	}
	h, err := e.HashPublicKeys(pubkeys)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(h))
	return nil
}

func delinearizeCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	h, err := hexFlag(c, "hash")
	if err != nil {
		return err
	}
	pub, err := hexFlag(c, "pubkey")
	if err != nil {
		return err
	}
	out, err := e.DelinearizePublicKey(h, pub, outputSize(c, e))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(out))
	return nil
}

func deriveSeckeyCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	h, err := hexFlag(c, "hash")
	if err != nil {
		return err
	}
	pub, err := hexFlag(c, "pubkey")
	if err != nil {
		return err
	}
	sec, err := hexFlag(c, "secret")
	if err != nil {
		return err
	}
	out, err := e.DeriveDelinearizedSecretKey(h, pub, sec)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(out))
	return nil
}

func aggregatePubkeysCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	pubkeys, err := pubkeysInput(c)
	if err != nil {
		return err
	}
	h, err := e.HashPublicKeys(pubkeys)
	if err != nil {
		return err
	}
	agg, err := e.AggregateDelinearizedPublicKeys(h, pubkeys, outputSize(c, e))
	if err != nil {
		return err
	}
	return printJSON(c, map[string]string{
		"hash":      hex.EncodeToString(h),
		"aggregate": hex.EncodeToString(agg),
	})
}

func commitCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}

	var randomness []byte
	if c.IsSet("randomness") {
		randomness, err = hexFlag(c, "randomness")
	} else {
		randomness, err = rand.GenerateRandomness()
	}
	if err != nil {
		return err
	}

	pair, err := e.CreateCommitment(randomness, outputSize(c, e))
	if err != nil {
		return err
	}
	nonce, err := pair.Nonce.Export()
	if err != nil {
		return err
	}
	return printJSON(c, map[string]string{
		"commitment": hex.EncodeToString(pair.Commitment),
		"nonce":      hex.EncodeToString(nonce),
	})
}

func aggregateCommitmentsCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	commitments, err := hexSliceFlag(c, "commitment")
	if err != nil {
		return err
	}
	agg, err := e.AggregateCommitments(commitments, outputSize(c, e))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(agg))
	return nil
}

func partialSignCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	msg, err := messageInput(c)
	if err != nil {
		return err
	}
	pubkeys, err := hexSliceFlag(c, "pubkey")
	if err != nil {
		return err
	}
	signer, err := hexFlag(c, "signer")
	if err != nil {
		return err
	}
	sec, err := hexFlag(c, "secret")
	if err != nil {
		return err
	}
	agg, err := hexFlag(c, "commitment")
	if err != nil {
		return err
	}
	rawNonce, err := hexFlag(c, "nonce")
	if err != nil {
		return err
	}
	nonce, err := commitment.ImportNonce(e.Curve(), rawNonce)
	if err != nil {
		return err
	}

	ps, err := e.PartialSign(msg, agg, nonce, pubkeys, signer, sec)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, ps.String())
	return nil
}

func combineCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	raw, err := hexSliceFlag(c, "partial")
	if err != nil {
		return err
	}
	partials := make([]musig.PartialSignature, len(raw))
	for i, r := range raw {
		partials[i], err = musig.ParsePartialSignature(r)
		if err != nil {
			return err
		}
	}
	sig, err := e.CombinePartialSignatures(partials)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, sig.String())
	return nil
}

func signCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	msg, err := messageInput(c)
	if err != nil {
		return err
	}
	pub, err := hexFlag(c, "pubkey")
	if err != nil {
		return err
	}
	sec, err := hexFlag(c, "secret")
	if err != nil {
		return err
	}
	sig, err := e.Sign(msg, pub, sec)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, sig.String())
	return nil
}

func verifyCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	msg, err := messageInput(c)
	if err != nil {
		return err
	}
	pub, err := hexFlag(c, "pubkey")
	if err != nil {
		return err
	}
	sig, err := hexFlag(c, "signature")
	if err != nil {
		return err
	}
	if !e.Verify(sig, msg, pub) {
		return cli.Exit("invalid signature", 2)
	}
	fmt.Fprintln(c.App.Writer, "valid")
	return nil
}

func addScalarsCmd(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	a, err := hexFlag(c, "a")
	if err != nil {
		return err
	}
	b, err := hexFlag(c, "b")
	if err != nil {
		return err
	}
	sum, err := e.AddScalars(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(sum[:]))
	return nil
}

func digestCmd(c *cli.Context) error {
	alg, err := hash.ParseAlgorithm(c.String("alg"))
	if err != nil {
		return err
	}
	data, err := messageInput(c)
	if err != nil {
		return err
	}
	sum, err := hash.Sum(alg, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(sum))
	return nil
}

func kdfCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	password, err := messageInput(c)
	if err != nil {
		return err
	}
	if err := security.ValidateNonEmpty("password", password); err != nil {
		return err
	}
	if !c.IsSet("salt") {
		newLogger(c, cfg).WarnEvent().Msg("no salt given, using the fixed single-shot salt")
		fmt.Fprintln(c.App.Writer, hex.EncodeToString(hash.Argon2Hash(password, uint32(c.Uint("memory")))))
		return nil
	}
	salt, err := hexFlag(c, "salt")
	if err != nil {
		return err
	}
	key, err := hash.KDF(password, salt, hash.KDFParams{
		MemoryKiB:  uint32(c.Uint("memory")),
		Iterations: uint32(c.Uint("iterations")),
		KeyLen:     uint32(c.Uint("length")),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(key))
	return nil
}
