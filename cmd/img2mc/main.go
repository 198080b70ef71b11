package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/multicolor"
	"github.com/bodgit/multicolor/sprite"
	"github.com/bodgit/multicolor/tile"
	"github.com/urfave/cli/v2"
)

const maxColor = 15

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*multicolor.Converter, func() error, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.String("db") == "" {
		return multicolor.New(nil, logger), func() error { return nil }, nil
	}

	db, err := multicolor.NewCatalog(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return multicolor.New(db, logger), db.Close, nil
}

func colorFlag(c *cli.Context, name string) (*uint8, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	v := c.Int(name)
	if v < 0 || v > maxColor {
		return nil, fmt.Errorf("--%s expects an integer in [0, %d]", name, maxColor)
	}
	return sprite.Color(uint8(v)), nil
}

// run converts a single job, the output is only written once the whole
// conversion has succeeded
func run(c *cli.Context, j *multicolor.Job) error {
	m, closer, err := newConverter(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()

	b, err := m.Convert(j)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if j.Output != "" {
		if err := ioutil.WriteFile(j.Output, b, 0644); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	if _, err := os.Stdout.Write(b); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "img2mc"
	app.Usage = "Indexed image to multicolor sprite and tileset converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MULTICOLOR_DB"},
			Usage:   "path to conversion catalog",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write to `FILE` instead of stdout",
	}
	binaryFlag := &cli.BoolFlag{
		Name:    "binary",
		Aliases: []string{"b"},
		Usage:   "output binary instead of ASM code",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "sprite",
			Usage:       "Convert an image to multicolor sprite frames",
			Description: "Image size must be a multiple of 12x21 pixels using no more than 4 colors.",
			ArgsUsage:   "IMAGE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "sprite",
					Usage:   "variable name",
				},
				&cli.IntFlag{
					Name:  "tc",
					Usage: "palette index for the transparent color (default: use order)",
				},
				&cli.IntFlag{
					Name:  "sc",
					Usage: "palette index for the sprite main color (default: use order)",
				},
				binaryFlag,
				outputFlag,
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				tc, err := colorFlag(c, "tc")
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				sc, err := colorFlag(c, "sc")
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return run(c, &multicolor.Job{
					Mode:   multicolor.ModeSprite,
					Image:  c.Args().First(),
					ID:     c.String("id"),
					Binary: c.Bool("binary"),
					Sprite: sprite.Options{
						Transparent: tc,
						Sprite:      sc,
					},
					Output: c.String("output"),
				})
			},
		},
		{
			Name:        "tileset",
			Usage:       "Convert an image to a multicolor tileset (charset)",
			Description: "COLORS is the colon-separated list of 3 shared colors, for example 0:1:12.",
			ArgsUsage:   "IMAGE COLORS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "tileset",
					Usage:   "variable name",
				},
				&cli.BoolFlag{
					Name:  "no-attr",
					Usage: "don't include attributes",
				},
				binaryFlag,
				outputFlag,
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				shared, err := tile.ParseShared(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return run(c, &multicolor.Job{
					Mode:         multicolor.ModeTileset,
					Image:        c.Args().First(),
					ID:           c.String("id"),
					Binary:       c.Bool("binary"),
					Shared:       shared,
					NoAttributes: c.Bool("no-attr"),
					Output:       c.String("output"),
				})
			},
		},
		{
			Name:        "build",
			Usage:       "Convert every image listed in an XML project manifest",
			Description: "",
			ArgsUsage:   "MANIFEST",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: multicolor.DefaultWorkers,
					Usage: "number of concurrent conversions",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := m.Build(c.Args().First(), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
