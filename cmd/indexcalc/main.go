package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/ZanzyTHEbar/epi-index/internal/indices"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("indexcalc failed", "error", err)
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "indexcalc",
		Usage:  "compute epidemiological survey indices and risk flags",
		Writer: out,
		// main owns the exit code
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the report as JSON"},
			&cli.BoolFlag{Name: "lenient", Usage: "clamp negative counts to 0 instead of failing"},
			&cli.Float64Flag{Name: "house-threshold", Value: indices.DefaultHouseIndexThreshold, EnvVars: []string{"HOUSE_INDEX_THRESHOLD"}},
			&cli.Float64Flag{Name: "breteau-threshold", Value: indices.DefaultBreteauIndexThreshold, EnvVars: []string{"BRETEAU_INDEX_THRESHOLD"}},
			&cli.Float64Flag{Name: "rodent-threshold", Value: indices.DefaultRodentIndexThreshold, EnvVars: []string{"RODENT_INDEX_THRESHOLD"}},
			&cli.Float64Flag{Name: "water-threshold", Value: indices.DefaultWaterContaminationThreshold, EnvVars: []string{"WATER_CONTAMINATION_THRESHOLD"}},
		},
		Commands: []*cli.Command{
			{
				Name:  "vector",
				Usage: "House, Container and Breteau indices from a larval survey",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "houses", Usage: "houses surveyed"},
					&cli.Int64Flag{Name: "positive-houses", Usage: "houses with at least one positive container"},
					&cli.Int64Flag{Name: "containers", Usage: "containers inspected"},
					&cli.Int64Flag{Name: "positive-containers", Usage: "containers found positive"},
				},
				Action: func(c *cli.Context) error {
					engine, err := engineFrom(c)
					if err != nil {
						return err
					}
					report, err := engine.EvaluateVectorBorne(indices.VectorBorneCounters{
						HousesSurveyed:      count(c, "houses"),
						PositiveHouses:      count(c, "positive-houses"),
						ContainersInspected: count(c, "containers"),
						PositiveContainers:  count(c, "positive-containers"),
					})
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					return printReport(c, report)
				},
			},
			{
				Name:  "rodent",
				Usage: "Rodent Index, Trap Success Rate and Water Contamination Rate",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "areas", Usage: "areas inspected"},
					&cli.Int64Flag{Name: "sightings", Usage: "areas with rodent sightings"},
					&cli.Int64Flag{Name: "traps", Usage: "traps set"},
					&cli.Int64Flag{Name: "caught", Usage: "rodents caught"},
					&cli.Int64Flag{Name: "samples", Usage: "water samples collected"},
					&cli.Int64Flag{Name: "contaminated", Usage: "contaminated water samples"},
				},
				Action: func(c *cli.Context) error {
					engine, err := engineFrom(c)
					if err != nil {
						return err
					}
					report, err := engine.EvaluateRodentBorne(indices.RodentBorneCounters{
						AreasInspected:        count(c, "areas"),
						RodentSightings:       count(c, "sightings"),
						TrapsSet:              count(c, "traps"),
						RodentsCaught:         count(c, "caught"),
						WaterSamplesCollected: count(c, "samples"),
						ContaminatedSamples:   count(c, "contaminated"),
					})
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					return printReport(c, report)
				},
			},
		},
	}
}

func engineFrom(c *cli.Context) (*indices.Engine, error) {
	engine, err := indices.NewEngine(indices.Thresholds{
		HouseIndex:         c.Float64("house-threshold"),
		BreteauIndex:       c.Float64("breteau-threshold"),
		RodentIndex:        c.Float64("rodent-threshold"),
		WaterContamination: c.Float64("water-threshold"),
	})
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	return engine, nil
}

func count(c *cli.Context, name string) int64 {
	v := c.Int64(name)
	if v < 0 && c.Bool("lenient") {
		return 0
	}
	return v
}

var labels = map[indices.Domain][][2]string{
	indices.DomainVector: {
		{"houseIndex", "House Index"},
		{"containerIndex", "Container Index"},
		{"breteauIndex", "Breteau Index"},
	},
	indices.DomainRodent: {
		{"rodentIndex", "Rodent Index"},
		{"trapSuccessRate", "Trap Success Rate"},
		{"waterContaminationRate", "Water Contamination Rate"},
	},
}

func printReport(c *cli.Context, report indices.Report) error {
	out := c.App.Writer

	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, l := range labels[report.Domain] {
		fmt.Fprintf(tw, "%s\t%s\n", l[1], report.Display[l[0]])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !report.Risk.HighRisk() {
		_, err := fmt.Fprintln(out, "Risk: low")
		return err
	}
	fmt.Fprintln(out, "Risk: HIGH")
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  %s\n", w)
	}
	return nil
}
