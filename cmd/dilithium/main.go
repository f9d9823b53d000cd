// Command dilithium is a CLI front end for the dilithium package: key
// generation, signing, verification, NIST .rsp KAT processing, and a
// benchmark harness that serves its results over Prometheus.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/latticesig/dilithium"
	"github.com/latticesig/dilithium/internal/bench"
	"github.com/latticesig/dilithium/internal/kat"
)

func newLogger() *zerolog.Logger {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	return &log
}

func main() {
	log := newLogger()

	app := &cli.App{
		Name:  "dilithium",
		Usage: "generate, sign, and verify with CRYSTALS-Dilithium",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "mode", Value: 3, Usage: "parameter set: 2, 3, or 5"},
		},
		Commands: []*cli.Command{
			keygenCommand(log),
			signCommand(log),
			verifyCommand(log),
			katCommand(log),
			benchCommand(log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("dilithium command failed")
	}
}

func keygenCommand(log *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate a key pair and print it hex-encoded",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-pk", Usage: "file to write the hex public key to (stdout if empty)"},
			&cli.StringFlag{Name: "out-sk", Usage: "file to write the hex private key to (stdout if empty)"},
		},
		Action: func(c *cli.Context) error {
			mode := c.Int("mode")
			pk, sk, err := generateHex(mode)
			if err != nil {
				return err
			}
			log.Info().Int("mode", mode).Msg("generated key pair")
			return writeOrPrint(c.String("out-pk"), "pk", pk, c.String("out-sk"), "sk", sk)
		},
	}
}

func signCommand(log *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "sign a message with a hex-encoded private key",
		ArgsUsage: "<sk-hex> <message>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "deterministic", Usage: "sign without consuming randomness"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: dilithium sign <sk-hex> <message>")
			}
			skHex, message := c.Args().Get(0), []byte(c.Args().Get(1))
			skBytes, err := hex.DecodeString(skHex)
			if err != nil {
				return fmt.Errorf("decoding sk: %w", err)
			}

			sig, err := signWithMode(c.Int("mode"), skBytes, message, c.Bool("deterministic"))
			if err != nil {
				return err
			}
			log.Info().Int("signature_bytes", len(sig)).Msg("signed message")
			fmt.Println(hex.EncodeToString(sig))
			return nil
		},
	}
}

func verifyCommand(log *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify a signature against a hex-encoded public key",
		ArgsUsage: "<pk-hex> <sig-hex> <message>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return fmt.Errorf("usage: dilithium verify <pk-hex> <sig-hex> <message>")
			}
			pkHex, sigHex, message := c.Args().Get(0), c.Args().Get(1), []byte(c.Args().Get(2))
			pkBytes, err := hex.DecodeString(pkHex)
			if err != nil {
				return fmt.Errorf("decoding pk: %w", err)
			}
			sigBytes, err := hex.DecodeString(sigHex)
			if err != nil {
				return fmt.Errorf("decoding sig: %w", err)
			}

			if err := verifyWithMode(c.Int("mode"), pkBytes, sigBytes, message); err != nil {
				log.Warn().Err(err).Msg("signature did not verify")
				return err
			}
			log.Info().Msg("signature verified")
			fmt.Println("OK")
			return nil
		},
	}
}

func katCommand(log *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "kat",
		Usage:     "process a NIST .rsp KAT file, verifying every (pk, sm) pair",
		ArgsUsage: "<path.rsp>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: dilithium kat <path.rsp>")
			}
			f, err := os.Open(c.Args().Get(0))
			if err != nil {
				return err
			}
			defer f.Close()

			vectors, err := kat.Read(f)
			if err != nil {
				return err
			}

			mode := c.Int("mode")
			passed := 0
			for _, v := range vectors {
				if len(v.SM) < v.MLen {
					log.Warn().Int("count", v.Count).Msg("sm shorter than mlen, skipping")
					continue
				}
				sig := v.SM[:len(v.SM)-v.MLen]
				msg := v.SM[len(v.SM)-v.MLen:]
				if err := verifyWithMode(mode, v.PK, sig, msg); err != nil {
					log.Error().Int("count", v.Count).Err(err).Msg("KAT vector failed")
					continue
				}
				passed++
			}
			log.Info().Int("passed", passed).Int("total", len(vectors)).Msg("KAT run complete")
			if passed != len(vectors) {
				return fmt.Errorf("kat: %d/%d vectors verified", passed, len(vectors))
			}
			return nil
		},
	}
}

func benchCommand(log *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run repeated keygen/sign/verify cycles, optionally serving Prometheus metrics",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "iterations", Value: 100, Usage: "number of cycles to run"},
			&cli.StringFlag{Name: "listen", Usage: "address to serve /metrics on, e.g. :9090"},
		},
		Action: func(c *cli.Context) error {
			cfg := bench.Config{
				Mode:       c.Int("mode"),
				Iterations: c.Int("iterations"),
				ListenAddr: c.String("listen"),
			}
			result, err := bench.Run(c.Context, cfg, log)
			if err != nil {
				return err
			}
			log.Info().
				Int("iterations", result.Iterations).
				Dur("keygen_total", result.KeygenTotal).
				Dur("sign_total", result.SignTotal).
				Dur("verify_total", result.VerifyTotal).
				Msg("bench complete")
			return nil
		},
	}
}

func generateHex(mode int) (pk, sk string, err error) {
	switch mode {
	case 2:
		key, err := dilithium.GenerateKey2(rand.Reader)
		if err != nil {
			return "", "", err
		}
		return hex.EncodeToString(key.PublicKey().Bytes()), hex.EncodeToString(key.PrivateKeyBytes()), nil
	case 3:
		key, err := dilithium.GenerateKey3(rand.Reader)
		if err != nil {
			return "", "", err
		}
		return hex.EncodeToString(key.PublicKey().Bytes()), hex.EncodeToString(key.PrivateKeyBytes()), nil
	case 5:
		key, err := dilithium.GenerateKey5(rand.Reader)
		if err != nil {
			return "", "", err
		}
		return hex.EncodeToString(key.PublicKey().Bytes()), hex.EncodeToString(key.PrivateKeyBytes()), nil
	default:
		return "", "", fmt.Errorf("unsupported mode %d", mode)
	}
}

func signWithMode(mode int, skBytes, message []byte, deterministic bool) ([]byte, error) {
	switch mode {
	case 2:
		sk, err := dilithium.NewPrivateKey2(skBytes)
		if err != nil {
			return nil, err
		}
		if deterministic {
			return sk.SignDeterministic(message)
		}
		return sk.Sign(rand.Reader, message, nil)
	case 3:
		sk, err := dilithium.NewPrivateKey3(skBytes)
		if err != nil {
			return nil, err
		}
		if deterministic {
			return sk.SignDeterministic(message)
		}
		return sk.Sign(rand.Reader, message, nil)
	case 5:
		sk, err := dilithium.NewPrivateKey5(skBytes)
		if err != nil {
			return nil, err
		}
		if deterministic {
			return sk.SignDeterministic(message)
		}
		return sk.Sign(rand.Reader, message, nil)
	default:
		return nil, fmt.Errorf("unsupported mode %d", mode)
	}
}

func verifyWithMode(mode int, pkBytes, sig, message []byte) error {
	switch mode {
	case 2:
		pk, err := dilithium.NewPublicKey2(pkBytes)
		if err != nil {
			return err
		}
		return pk.Verify(sig, message)
	case 3:
		pk, err := dilithium.NewPublicKey3(pkBytes)
		if err != nil {
			return err
		}
		return pk.Verify(sig, message)
	case 5:
		pk, err := dilithium.NewPublicKey5(pkBytes)
		if err != nil {
			return err
		}
		return pk.Verify(sig, message)
	default:
		return fmt.Errorf("unsupported mode %d", mode)
	}
}

func writeOrPrint(pkPath, pkLabel, pkHex, skPath, skLabel, skHex string) error {
	if pkPath == "" {
		fmt.Printf("%s = %s\n", pkLabel, pkHex)
	} else if err := os.WriteFile(pkPath, []byte(pkHex+"\n"), 0o600); err != nil {
		return err
	}
	if skPath == "" {
		fmt.Printf("%s = %s\n", skLabel, skHex)
	} else if err := os.WriteFile(skPath, []byte(skHex+"\n"), 0o600); err != nil {
		return err
	}
	return nil
}
