package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/invertedv/parcels"
	"github.com/invertedv/parcels/calendar"
	"github.com/invertedv/parcels/catalog"
	"github.com/invertedv/parcels/features"
	"github.com/invertedv/parcels/internal/config"
	"github.com/invertedv/parcels/internal/logging"
)

func newFeaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Build a training or inference feature table",
		Long: "In train mode the datetime aggregates are built from the training transactions and saved to the " +
			"aggregates directory. In inference mode they are loaded from there and every parcel is scored at --date.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, e := loadConfig(cmd, map[string]string{
				"mode":        "features.mode",
				"properties":  "features.properties",
				"train":       "features.train",
				"aggregates":  "features.aggregates",
				"output":      "features.output",
				"labels":      "features.labels",
				"keys":        "features.keys",
				"format":      "features.format",
				"date":        "features.date",
				"drop-sparse": "features.drop_sparse",
				"source":      "source.kind",
			})
			if e != nil {
				return e
			}
			defer func() { _ = logger.Sync() }()

			if e := cfg.ValidateFeatures(); e != nil {
				return e
			}

			return runFeatures(cmd.Context(), cfg, logger)
		},
	}

	fl := cmd.Flags()
	fl.String("mode", config.ModeTrain, "train or inference")
	fl.String("properties", "", "properties CSV file")
	fl.String("train", "", "training transactions CSV file")
	fl.String("aggregates", "aggregates", "directory of the datetime aggregate tables")
	fl.String("output", "", "feature table output file")
	fl.String("labels", "", "optional parcelid,logerror output file (train mode)")
	fl.String("keys", "", "optional parcelid output file, in feature-table row order")
	fl.String("format", config.FormatCSV, "csv or parquet")
	fl.String("date", "2016-10-01", "transaction date of the inference frame")
	fl.Bool("drop-sparse", false, "drop the sparse columns")
	fl.String("source", config.SourceFile, "file, clickhouse or postgres")

	return cmd
}

func runFeatures(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	start := time.Now()

	var (
		a          *features.Assembler
		raw, train *parcels.DF
		props      *parcels.DF
		e          error
	)
	if a, e = features.NewAssembler(features.WithDropSparse(cfg.Features.DropSparse),
		features.WithLogger(logger.SugaredLogger)); e != nil {
		return e
	}

	if raw, train, e = loadSources(ctx, cfg); e != nil {
		return e
	}

	if props, e = a.Properties(raw); e != nil {
		return e
	}

	var (
		aggs *calendar.Aggregates
		tbl  *features.Table
	)
	switch cfg.Features.Mode {
	case config.ModeTrain:
		if aggs, e = calendar.Build(train); e != nil {
			return e
		}

		if e = os.MkdirAll(cfg.Features.Aggregates, 0o755); e != nil {
			return errors.Wrap(e, "aggregates directory")
		}

		if e = calendar.Save(cfg.Features.Aggregates, aggs); e != nil {
			return e
		}

		if tbl, e = a.Training(props, train, aggs); e != nil {
			return e
		}

		if cfg.Features.Labels != "" {
			if e = saveKeys(cfg.Features.Labels, tbl, true); e != nil {
				return e
			}
		}
	case config.ModeInference:
		if aggs, e = calendar.Load(cfg.Features.Aggregates); e != nil {
			return e
		}

		date, _ := parcels.ParseDate(cfg.Features.Date)

		var frame *parcels.DF
		if frame, e = features.InferenceFrame(props, date); e != nil {
			return e
		}

		if tbl, e = a.Inference(props, frame, aggs); e != nil {
			return e
		}
	}

	if e = saveTable(cfg.Features.Output, cfg.Features.Format, tbl.Features); e != nil {
		return e
	}

	if cfg.Features.Keys != "" {
		if e = saveKeys(cfg.Features.Keys, tbl, false); e != nil {
			return e
		}
	}

	logger.Infow("feature table written", "mode", cfg.Features.Mode, "output", cfg.Features.Output,
		"rows", tbl.Features.RowCount(), "dropped", a.Dropped(), "elapsed", time.Since(start))

	return nil
}

// loadSources returns the raw properties and, in train mode, the training transactions.
func loadSources(ctx context.Context, cfg *config.Config) (props, train *parcels.DF, err error) {
	wantTrain := cfg.Features.Mode == config.ModeTrain

	if cfg.Source.Kind == config.SourceFile {
		pf, _ := parcels.NewFiles(parcels.FileTextFields(catalog.TextColumns...))
		if props, err = pf.Load(cfg.Features.Properties); err != nil {
			return nil, nil, err
		}

		if wantTrain {
			tf, _ := parcels.NewFiles()
			if train, err = tf.Load(cfg.Features.Train); err != nil {
				return nil, nil, err
			}
		}

		return props, train, nil
	}

	src := cfg.Source

	var db *sql.DB
	switch src.Kind {
	case config.SourceClickHouse:
		db, err = parcels.NewConnectCH(src.Host, src.User, src.Password, src.Database)
	case config.SourcePostgres:
		db, err = parcels.NewConnectPG(src.Host, src.User, src.Password, src.Database)
	}
	if err != nil {
		return nil, nil, err
	}

	var d *parcels.Dialect
	if d, err = parcels.NewDialect(src.Kind, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	defer func() { _ = d.Close() }()

	if props, err = d.Load(ctx, src.PropertiesQuery, catalog.TextColumns...); err != nil {
		return nil, nil, err
	}

	if wantTrain {
		if train, err = d.Load(ctx, src.TrainQuery); err != nil {
			return nil, nil, err
		}
	}

	return props, train, nil
}

// saveTable writes the feature columns only; ids and labels go to their own files.
func saveTable(fileName, format string, df *parcels.DF) error {
	if format == config.FormatCSV {
		f, _ := parcels.NewFiles()
		return f.Save(fileName, df)
	}

	var (
		fh *os.File
		e  error
	)
	if fh, e = os.Create(fileName); e != nil {
		return errors.Wrapf(e, "create %s", fileName)
	}

	if e = parcels.WriteParquet(fh, df); e != nil {
		_ = fh.Close()
		return e
	}

	return fh.Close()
}

// saveKeys writes parcelid, plus logerror if withLabel, in the row order of the feature table.
func saveKeys(fileName string, tbl *features.Table, withLabel bool) error {
	var (
		idc *parcels.Col
		out *parcels.DF
		e   error
	)
	if idc, e = parcels.NewCol(tbl.ParcelID, parcels.DTint, parcels.ColName(catalog.ParcelID)); e != nil {
		return e
	}

	cols := []*parcels.Col{idc}
	if withLabel {
		var yc *parcels.Col
		if yc, e = parcels.NewCol(tbl.Label, parcels.DTfloat, parcels.ColName(catalog.LogError)); e != nil {
			return e
		}

		cols = append(cols, yc)
	}

	if out, e = parcels.NewDF(cols...); e != nil {
		return e
	}

	f, _ := parcels.NewFiles()

	return f.Save(fileName, out)
}
