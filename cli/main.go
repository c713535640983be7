package main

import (
	"bufio"
	"fmt"
	"github.com/ghetzel/cli"
	"github.com/op/go-logging"
	"github.com/tony-stone/vanmaps"
	"net/http"
	"os"
	"strings"
)

var DefaultParser = `csv`
var DefaultLevel = `counties`
var log = logging.MustGetLogger(`main`)

func main() {
	app := cli.NewApp()
	app.Name = `vanmaps`
	app.Usage = `Choropleth maps of English counties and ambulance service areas.`
	app.Version = `0.0.1`
	app.EnableBashCompletion = false

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   `log-level, L`,
			Usage:  `Level of log output verbosity`,
			Value:  `debug`,
			EnvVar: `LOGLEVEL`,
		},
		cli.StringFlag{
			Name:   `data-dir, d`,
			Usage:  `Directory holding the variable store.`,
			Value:  `~/.vanmaps`,
			EnvVar: `VANMAPS_DATA`,
		},
	}

	app.Before = func(c *cli.Context) error {
		logging.SetFormatter(logging.MustStringFormatter(`%{color}%{level:.4s}%{color:reset}[%{id:04d}] %{message}`))

		if level, err := logging.LogLevel(c.String(`log-level`)); err == nil {
			logging.SetLevel(level, ``)
		} else {
			return err
		}

		return vanmaps.Initialize(c.String(`data-dir`))
	}

	app.After = func(c *cli.Context) error {
		vanmaps.Cleanup()
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:      `push`,
			ArgsUsage: `VARIABLE`,
			Usage:     `Store per-region observations for the named variable as read from standard input.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `parser, p`,
					Usage: `The parser to use for decoding input lines.`,
					Value: DefaultParser,
				},
			},
			Action: func(c *cli.Context) {
				variable := c.Args().First()

				if variable == `` {
					log.Fatalf("Must specify a variable name.")
				}

				if parser, ok := vanmaps.GetParser(c.String(`parser`)); ok {
					scanner := bufio.NewScanner(os.Stdin)

					for scanner.Scan() {
						if err := scanner.Err(); err != nil {
							log.Fatalf("Error reading input: %v", err)
						}

						line := scanner.Text()

						if line == `` {
							continue
						}

						if region, value, err := parser.Parse(line); err == nil {
							vanmaps.SetValue(variable, region, value)
						} else {
							log.Warningf("malformed line: %v", err)
						}
					}
				} else {
					log.Fatalf("Unknown parser %q", c.String(`parser`))
				}
			},
		}, {
			Name:      `ls`,
			ArgsUsage: `[PATTERN]`,
			Usage:     "List region identifiers for a geography level.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `level, l`,
					Usage: `The geography level to list (counties, services).`,
					Value: DefaultLevel,
				},
			},
			Action: func(c *cli.Context) {
				if level, err := vanmaps.ParseGeographyLevel(c.String(`level`)); err == nil {
					pattern := c.Args().First()

					if pattern == `` {
						pattern = `**`
					}

					if names, err := vanmaps.ShippedRegions(level).Names(pattern); err == nil {
						for _, name := range names {
							fmt.Println(name)
						}
					} else {
						log.Fatalf("Failed to list regions: %v", err)
					}
				} else {
					log.Fatal(err)
				}
			},
		}, {
			Name:      `vars`,
			ArgsUsage: `[PATTERN]`,
			Usage:     `List stored variable names, optionally dumping their observations.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `format, f`,
					Usage: `The output format for dumping observations (csv, json).`,
				},
			},
			Action: func(c *cli.Context) {
				pattern := c.Args().First()

				if pattern == `` {
					pattern = `**`
				}

				if names, err := vanmaps.Database.GetNames(pattern); err == nil {
					format := c.String(`format`)

					if format == `` {
						for _, name := range names {
							fmt.Println(name)
						}

						return
					}

					if formatter, ok := vanmaps.GetFormatter(format); ok {
						for _, name := range names {
							if values, err := vanmaps.Database.Values(name); err == nil {
								for region, value := range values {
									fmt.Println(formatter.Format(region, value))
								}
							} else {
								log.Fatalf("Failed to read variable %q: %v", name, err)
							}
						}
					} else {
						log.Fatalf("Unknown formatter %q", format)
					}
				} else {
					log.Fatalf("Failed to list variables: %v", err)
				}
			},
		}, {
			Name:      `summary`,
			ArgsUsage: `VARIABLE`,
			Usage:     `Print summary statistics of a stored variable.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `level, l`,
					Usage: `The geography level to summarize over.`,
					Value: DefaultLevel,
				},
				cli.StringFlag{
					Name:  `fn`,
					Usage: `Comma-separated summary functions to apply.`,
					Value: `count,mean,median,min,max`,
				},
			},
			Action: func(c *cli.Context) {
				variable := c.Args().First()

				if variable == `` {
					log.Fatalf("Must specify a variable name.")
				}

				level, err := vanmaps.ParseGeographyLevel(c.String(`level`))

				if err != nil {
					log.Fatal(err)
				}

				set := vanmaps.ShippedRegions(level).Clone()

				if err := vanmaps.Database.Apply(set, variable); err != nil {
					log.Fatalf("Failed to load variable: %v", err)
				}

				names := strings.Split(c.String(`fn`), `,`)
				reducers := make([]vanmaps.ReducerFunc, len(names))

				for i, name := range names {
					if r, ok := vanmaps.GetReducer(name); ok {
						reducers[i] = r
					} else {
						log.Fatalf("Unknown summary function %q", name)
					}
				}

				for i, value := range vanmaps.SummarizeVariable(set, variable, reducers...) {
					fmt.Printf("%s=%g\n", vanmaps.GetReducerName(names[i]), value)
				}
			},
		}, {
			Name:      `render`,
			ArgsUsage: `VARIABLE`,
			Usage:     `Render a choropleth of a stored variable to standard output.`,
			Flags:     renderFlags(),
			Action: func(c *cli.Context) {
				variable := c.Args().First()

				if variable == `` {
					log.Fatalf("Must specify a variable name.")
				}

				level, options, err := renderOptions(c)

				if err != nil {
					log.Fatal(err)
				}

				format := vanmaps.RenderFormat(c.String(`format`))

				if err := vanmaps.RenderVariable(level, variable, os.Stdout, format, options); err != nil {
					log.Fatalf("Map render error: %v", err)
				}
			},
		}, {
			Name:      `save`,
			ArgsUsage: `VARIABLE BASENAME`,
			Usage:     `Write one image file per view of a stored variable.`,
			Flags: append(renderFlags(), cli.IntFlag{
				Name:  `width, w`,
				Usage: `The pixel width of the saved images.`,
				Value: vanmaps.DefaultWidth,
			}),
			Action: func(c *cli.Context) {
				if c.NArg() < 2 {
					log.Fatalf("Must specify a variable name and an output basename.")
				}

				variable := c.Args().First()
				basename := c.Args().Get(1)

				level, options, err := renderOptions(c)

				if err != nil {
					log.Fatal(err)
				}

				if msg, err := vanmaps.SaveVariable(level, variable, options, basename, c.Int(`width`)); err == nil {
					log.Noticef("%s", msg)
				} else {
					log.Fatalf("Save failed: %v", err)
				}
			},
		}, {
			Name:      `rm`,
			ArgsUsage: `PATTERN [PATTERN ..]`,
			Usage:     `Remove stored variables matching the given patterns.`,
			Action: func(c *cli.Context) {
				if c.NArg() > 0 {
					if n, err := vanmaps.Database.Remove(c.Args()...); err == nil {
						log.Noticef("Removed %d variables", n)
					} else {
						log.Fatalf("Failed to remove variables: %v", err)
					}
				} else {
					log.Fatalf("Must specify at least one pattern to remove.")
				}
			},
		}, {
			Name:  `compact`,
			Usage: `Compact the variable store.`,
			Action: func(c *cli.Context) {
				if err := vanmaps.Database.Shrink(); err != nil {
					log.Fatalf("Failed to compact store: %v", err)
				}
			},
		}, {
			Name:  `serve`,
			Usage: `Serve region listings, variable summaries, and rendered maps over HTTP.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  `address, a`,
					Usage: `The address to listen on.`,
					Value: `127.0.0.1:11647`,
				},
			},
			Action: func(c *cli.Context) {
				address := c.String(`address`)
				log.Noticef("Listening on %s", address)

				if err := http.ListenAndServe(address, vanmaps.CreateServer(`/api`)); err != nil {
					log.Fatalf("Server error: %v", err)
				}
			},
		},
	}

	app.Run(os.Args)
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  `level, l`,
			Usage: `The geography level to map (counties, services).`,
			Value: DefaultLevel,
		},
		cli.StringFlag{
			Name:  `format, f`,
			Usage: `The image format to render (png, svg).`,
			Value: string(vanmaps.RenderFormatPNG),
		},
		cli.StringFlag{
			Name:  `map-title, T`,
			Usage: `The title of the map.`,
		},
		cli.StringFlag{
			Name:  `source, S`,
			Usage: `Attribution text for the data source.`,
		},
		cli.IntFlag{
			Name:  `qtiles, q`,
			Usage: `The number of quantile bins to classify into.`,
		},
		cli.StringFlag{
			Name:  `breaks, b`,
			Usage: `Explicit comma-separated break edges (overrides --qtiles).`,
		},
		cli.BoolFlag{
			Name:  `greyscale, g`,
			Usage: `Use the greyscale palette family.`,
		},
		cli.BoolFlag{
			Name:  `london`,
			Usage: `Restrict the rendered view to the London boroughs (county level only).`,
		},
	}
}

func renderOptions(c *cli.Context) (vanmaps.GeographyLevel, vanmaps.MapOptions, error) {
	level, err := vanmaps.ParseGeographyLevel(c.String(`level`))

	if err != nil {
		return 0, vanmaps.MapOptions{}, err
	}

	options := vanmaps.MapOptions{
		Title:      c.String(`map-title`),
		Source:     c.String(`source`),
		Qtiles:     c.Int(`qtiles`),
		Greyscale:  c.Bool(`greyscale`),
		LondonOnly: c.Bool(`london`),
	}

	if breaks, err := vanmaps.ParseBreakList(c.String(`breaks`)); err == nil {
		options.Breaks = breaks
	} else {
		return 0, vanmaps.MapOptions{}, err
	}

	return level, options, nil
}
