// Command ahefutil is a toolkit for a toy additively- and
// multiplicatively-homomorphic encryption scheme over rationals.
// Every operation reads and writes JSON envelopes on the filesystem;
// see the envelope package for the format.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/rmrschub/ahefutil/ahe"
	"github.com/rmrschub/ahefutil/envelope"
)

var log = logging.MustGetLogger("ahefutil")

const (
	exitUsageError   = 1
	exitRuntimeError = 2
)

func main() {
	app := cli.NewApp()
	app.Name = "ahefutil"
	app.Usage = "additively and multiplicatively homomorphic encryption over rationals"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug output",
		},
	}
	app.Before = func(c *cli.Context) error {
		setupLogging(c.GlobalBool("verbose"))
		return nil
	}
	app.Commands = []cli.Command{
		cli.Command{
			Name:  "genpkey",
			Usage: "Generate random primes p and q of bitsize k",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:     "output, o",
					Usage:    "Output file containing generated private keys",
					Required: true,
				},
				cli.IntFlag{
					Name:  "keysize, k",
					Usage: "Keysize in bits",
					Value: ahe.DefaultBits,
				},
				cli.BoolFlag{
					Name:  "special-factor",
					Usage: "Require p-1 to have a large prime factor",
				},
			},
			Action: genpkeyCommand,
		},
		cli.Command{
			Name:  "extract",
			Usage: "Extract the public key N = p*q from a private key file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:     "input, i",
					Usage:    "Private key file",
					Required: true,
				},
				cli.StringFlag{
					Name:     "output, o",
					Usage:    "Output file containing the public key",
					Required: true,
				},
			},
			Action: extractCommand,
		},
		cli.Command{
			Name:  "encrypt",
			Usage: "Encrypt a rational number",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:     "privateKeys, p",
					Usage:    "Private key file",
					Required: true,
				},
				cli.Float64Flag{
					Name:     "value, v",
					Usage:    "Rational number to encrypt",
					Required: true,
				},
				cli.StringFlag{
					Name:     "outputFile, o",
					Usage:    "Output file containing the ciphertext",
					Required: true,
				},
			},
			Action: encryptCommand,
		},
		cli.Command{
			Name:  "decrypt",
			Usage: "Decrypt a ciphertext and print the plaintext to stdout",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:     "privateKeys, p",
					Usage:    "Private key file",
					Required: true,
				},
				cli.StringFlag{
					Name:     "cipherText, c",
					Usage:    "File containing the ciphertext",
					Required: true,
				},
			},
			Action: decryptCommand,
		},
		evalCommand("addenc", "Add two encrypted numbers"),
		evalCommand("subenc", "Subtract two encrypted numbers"),
		evalCommand("mulenc", "Multiply two encrypted numbers"),
	}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
	}
}

func setupLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{level:.4s} %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.ERROR, "")
	}
	logging.SetBackend(leveled)
}

// fatal wraps a runtime error into the exit-code-2 convention with a
// one-line styled message on stderr.
func fatal(err error) error {
	return cli.NewExitError(color.RedString("ahefutil: %v", err), exitRuntimeError)
}

func defaultParams() ahe.Parameters {
	params, err := ahe.NewParametersFromLiteral(ahe.ParametersLiteral{})
	if err != nil {
		// Sanity check, the default literal is always valid.
		panic(err)
	}
	return params
}

func genpkeyCommand(c *cli.Context) error {

	params, err := ahe.NewParametersFromLiteral(ahe.ParametersLiteral{
		Bits:          c.Int("keysize"),
		SpecialFactor: c.Bool("special-factor"),
	})
	if err != nil {
		return cli.NewExitError(err.Error(), exitUsageError)
	}

	log.Debugf("sampling two %d-bit primes", params.Bits())

	sk, err := ahe.NewKeyGenerator(params, nil).GenSecretKeyNew()
	if err != nil {
		return fatal(err)
	}

	if err := envelope.WritePrivateKeys(c.String("output"), sk); err != nil {
		return fatal(err)
	}

	return nil
}

func extractCommand(c *cli.Context) error {

	sk, err := envelope.ReadPrivateKeys(c.String("input"))
	if err != nil {
		return fatal(err)
	}

	pk := ahe.NewKeyGenerator(defaultParams(), nil).GenPublicKeyNew(sk)

	if err := envelope.WritePublicKey(c.String("output"), pk); err != nil {
		return fatal(err)
	}

	return nil
}

func encryptCommand(c *cli.Context) error {

	sk, err := envelope.ReadPrivateKeys(c.String("privateKeys"))
	if err != nil {
		return fatal(err)
	}

	ct, err := ahe.NewEncryptor(defaultParams(), sk).EncryptNew(c.Float64("value"))
	if err != nil {
		return fatal(err)
	}

	if err := envelope.WriteCiphertext(c.String("outputFile"), ct); err != nil {
		return fatal(err)
	}

	return nil
}

func decryptCommand(c *cli.Context) error {

	sk, err := envelope.ReadPrivateKeys(c.String("privateKeys"))
	if err != nil {
		return fatal(err)
	}

	ct, legacySign, err := envelope.ReadCiphertext(c.String("cipherText"))
	if err != nil {
		return fatal(err)
	}

	if legacySign {
		log.Warning("ciphertext uses the legacy 0/1 sign encoding; a sign produced by a legacy addenc/subenc may disagree with the corrected sign computation")
	}

	plaintext, err := ahe.NewDecryptor(sk).DecryptDecimalNew(ct)
	if err != nil {
		return fatal(err)
	}

	fmt.Println(plaintext)

	return nil
}

// evalCommand builds one of the homomorphic-operation commands, which
// share their flag surface.
func evalCommand(name, usage string) cli.Command {
	return cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:     "publicKey, p",
				Usage:    "File containing the public key",
				Required: true,
			},
			cli.StringFlag{
				Name:     "ENCRYPTED_A, a",
				Usage:    "File containing the first operand",
				Required: true,
			},
			cli.StringFlag{
				Name:     "ENCRYPTED_B, b",
				Usage:    "File containing the second operand",
				Required: true,
			},
			cli.StringFlag{
				Name:     "output, o",
				Usage:    "File containing the encrypted result",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {

			pk, err := envelope.ReadPublicKey(c.String("publicKey"))
			if err != nil {
				return fatal(err)
			}

			ctA, _, err := envelope.ReadCiphertext(c.String("ENCRYPTED_A"))
			if err != nil {
				return fatal(err)
			}

			ctB, _, err := envelope.ReadCiphertext(c.String("ENCRYPTED_B"))
			if err != nil {
				return fatal(err)
			}

			eval := ahe.NewEvaluator(pk)

			var ctC *ahe.Ciphertext
			switch name {
			case "addenc":
				ctC = eval.AddNew(ctA, ctB)
			case "subenc":
				ctC = eval.SubNew(ctA, ctB)
			case "mulenc":
				ctC = eval.MulNew(ctA, ctB)
			}

			if err := envelope.WriteCiphertext(c.String("output"), ctC); err != nil {
				return fatal(err)
			}

			return nil
		},
	}
}
