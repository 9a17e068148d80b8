/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mikeb26/tshstats/internal/config"
	"github.com/mikeb26/tshstats/internal/httpcache"
	"github.com/mikeb26/tshstats/tsh"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tshstats",
		Usage: "standings and statistics from tsh tourney.js files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "tourney.js or results page URL",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "local tourney.js file",
			},
			&cli.StringFlag{
				Name:  "marker",
				Usage: "text preceding the tournament object (default newt=)",
			},
			&cli.StringFlag{
				Name:    "division",
				Aliases: []string{"d"},
				Usage:   "restrict output to one division",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "standings",
				Usage:  "print each division's standings",
				Action: handleStandings,
			},
			{
				Name:  "leaders",
				Usage: "print category leaders for each division",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Value: "high",
						Usage: "high, average or rating",
					},
					&cli.IntFlag{
						Name:  "count",
						Value: 5,
						Usage: "number of leaders to print (0 for all)",
					},
				},
				Action: handleLeaders,
			},
			{
				Name:  "crosstable",
				Usage: "print round by round results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "player",
						Usage: "only show this player and their opponents",
					},
				},
				Action: handleCrossTable,
			},
			{
				Name:   "divisions",
				Usage:  "print per-division game summaries",
				Action: handleDivisions,
			},
			{
				Name:      "player",
				Usage:     "print a player's record and games",
				ArgsUsage: "<name>",
				Action:    handlePlayer,
			},
		},
	}
}

// loadResults resolves the source from flags then config and runs the
// pipeline over it, honoring --division.
func loadResults(c *cli.Context) (*tsh.Results, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	source := cfg.Source.URL
	if c.IsSet("url") {
		source = c.String("url")
	}
	if c.IsSet("file") {
		source = c.String("file")
	}
	if source == "" {
		return nil, fmt.Errorf("please provide --url or --file")
	}
	marker := cfg.Source.Marker
	if c.IsSet("marker") {
		marker = c.String("marker")
	}

	httpClient := httpcache.NewCachedHttpClient(c.Context, httpcache.Options{
		Bucket: cfg.Cache.Bucket,
		Prefix: cfg.Cache.Prefix,
		Gzip:   cfg.Cache.Gzip,
		MaxAge: cfg.Cache.MaxAge,
	})
	client := tsh.NewClient(httpClient, marker)
	results, err := client.GetResults(c.Context, source)
	if err != nil {
		return nil, fmt.Errorf("error loading %v: %w", source, err)
	}

	return results.Filter(c.String("division"))
}

func handleStandings(c *cli.Context) error {
	results, err := loadResults(c)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, tsh.BuildStandingsOutput(results))

	return nil
}

func handleLeaders(c *cli.Context) error {
	category, err := tsh.ParseLeaderCategory(c.String("category"))
	if err != nil {
		return err
	}
	results, err := loadResults(c)
	if err != nil {
		return err
	}
	for _, ds := range results.Divisions {
		fmt.Fprint(c.App.Writer,
			tsh.BuildLeadersOutput(ds, category, c.Int("count")))
	}

	return nil
}

func handleCrossTable(c *cli.Context) error {
	results, err := loadResults(c)
	if err != nil {
		return err
	}
	for _, ds := range results.Divisions {
		fmt.Fprint(c.App.Writer, tsh.BuildCrossTableOutput(ds,
			len(results.Divisions) > 1, c.String("player")))
	}

	return nil
}

func handleDivisions(c *cli.Context) error {
	results, err := loadResults(c)
	if err != nil {
		return err
	}
	if len(results.Divisions) == 0 {
		fmt.Fprintln(c.App.Writer, "No divisions found")
		return nil
	}
	for _, ds := range results.Divisions {
		fmt.Fprint(c.App.Writer, tsh.BuildSummaryOutput(ds))
	}

	return nil
}

func handlePlayer(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("please provide a player name")
	}
	results, err := loadResults(c)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer,
		tsh.BuildPlayerOutput(results.FindPlayer(c.Args().First())))

	return nil
}
