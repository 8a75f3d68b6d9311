package main

import (
	"github.com/spf13/cobra"

	"github.com/invertedv/parcels"
	"github.com/invertedv/parcels/report"
	"github.com/invertedv/parcels/stack"
)

func newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Blend an ensembled and a single-model submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, e := loadConfig(cmd, map[string]string{
				"ensembled": "stack.ensembled",
				"single":    "stack.single",
				"output":    "stack.output",
				"weight":    "stack.weight",
				"key":       "stack.key",
				"periods":   "stack.periods",
			})
			if e != nil {
				return e
			}
			defer func() { _ = logger.Sync() }()

			s := cfg.Stack
			if e = cfg.ValidateStack(); e != nil {
				return e
			}

			var ens, single, out *stack.Predictions
			if ens, e = stack.Load(s.Ensembled, s.Key, s.Periods); e != nil {
				return e
			}

			if single, e = stack.Load(s.Single, s.Key, s.Periods); e != nil {
				return e
			}

			if out, e = stack.Blend(ens, single, s.Weight); e != nil {
				return e
			}

			if e = stack.Save(s.Output, out); e != nil {
				return e
			}

			logger.Infow("blended submission written", "output", s.Output, "rows", len(out.Keys()), "weight", s.Weight)

			return nil
		},
	}

	fl := cmd.Flags()
	fl.String("ensembled", "", "ensembled predictions CSV file")
	fl.String("single", "", "single-model predictions CSV file")
	fl.String("output", "", "blended output CSV file")
	fl.Float64("weight", stack.Weight, "weight of the ensembled predictions")
	fl.String("key", stack.KeyColumn, "key column")
	fl.StringSlice("periods", stack.Periods, "period columns")

	return cmd
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete FILE",
		Short: "Print the fraction of non-missing values of each column of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _ := parcels.NewFiles()

			df, e := f.Load(args[0])
			if e != nil {
				return e
			}

			return report.Print(cmd.OutOrStdout(), report.Report(df))
		},
	}
}
