package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/quantalogic/lorem-ipsum-generator/internal/config"
	"github.com/quantalogic/lorem-ipsum-generator/internal/logging"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/generator"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/models"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/render"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "lorem",
		Usage:     "Generate lorem ipsum placeholder text",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:      string(generator.UnitWords),
				Usage:     "Generate N words",
				ArgsUsage: "N",
				Flags:     commonFlags(),
				Action:    generateAction(generator.UnitWords),
			},
			{
				Name:      string(generator.UnitSentences),
				Usage:     "Generate N sentences",
				ArgsUsage: "N",
				Flags:     commonFlags(),
				Action:    generateAction(generator.UnitSentences),
			},
			{
				Name:      string(generator.UnitParagraphs),
				Usage:     "Generate N paragraphs",
				ArgsUsage: "N",
				Flags: append(commonFlags(), &cli.BoolFlag{
					Name:  "classic-first",
					Usage: "Start with the classic \"Lorem ipsum dolor sit amet...\" paragraph",
				}),
				Action: generateAction(generator.UnitParagraphs),
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to lorem.toml (defaults to the search paths)",
		},
		&cli.IntFlag{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "Seed for reproducible output",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   string(render.FormatText),
			Usage:   "Output format (text, html or json)",
		},
		&cli.BoolFlag{
			Name:  "copy",
			Usage: "Also copy the plain text to the clipboard",
		},
	}
}

func generateAction(unit generator.Unit) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		cfg, _, err := config.Load(c.String("config"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := logging.New(cfg.Debug.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		format, err := render.ParseFormat(c.String("format"))
		if err != nil {
			return err
		}

		var wordBank *utils.WordBank
		if path := cfg.Generator.VocabularyFile; path != "" {
			if wordBank, err = config.LoadVocabulary(path); err != nil {
				return err
			}
		}

		seed := time.Now().UnixNano()
		if c.IsSet("seed") {
			seed = c.Int("seed")
		} else if s := cfg.Generator.SeedPtr(); s != nil {
			seed = *s
		}

		gen, err := generator.NewLoremGeneratorWithSource(wordBank, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}

		req := generator.Request{
			Unit:  unit,
			Count: generator.ParseCount(c.Args().First()),
		}
		if unit == generator.UnitParagraphs {
			req.UseClassicOpening = c.Bool("classic-first")
		}

		res, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}

		text := render.Text(res)
		if err := write(c.Root().Writer, res, text, format); err != nil {
			return err
		}

		if c.Bool("copy") {
			if err := copyToClipboard(text); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			logger.Info("Copied to clipboard", zap.Int("characters", len(text)))
		}
		return nil
	}
}

func write(w io.Writer, res *generator.Result, text string, format render.Format) error {
	if format == render.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(models.NewGeneration(
			utils.NewIDGenerator().GenerateID(),
			time.Now().Unix(),
			string(res.Unit),
			res.Items,
			text,
		))
	}

	out, err := render.Render(res, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
