package cmd

import (
	"fmt"

	"asset-verifier/core/config"
	"asset-verifier/core/database"
	"asset-verifier/core/logger"
	"asset-verifier/feature/assets"
	"asset-verifier/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var integrityOpts struct {
	verifyFlags
	history bool
}

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity [dir]",
	Short: "Check that an export is ready to be verified",
	Long: `Checks that the export carries assetmap.json and metadata.json and reports
which platforms its metadata describes. It does not reconcile asset sets.

The embedded manifest is only checked when --embedded-manifest-path is given,
and a platform only fails the check when --platform names it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntegrity,
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !assets.ValidFormat(integrityOpts.output) {
		return fmt.Errorf("unsupported output format %q", integrityOpts.output)
	}

	vcfg := integrityOpts.apply(cfg.Verify)

	logg, err := logger.NewForCLI(cfg.Log, vcfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	kind, err := assets.ParseSource(vcfg.Source)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, err := newSource(ctx, cfg, kind, logg)
	if err != nil {
		return err
	}

	root, err := projectRoot(args, kind)
	if err != nil {
		return err
	}

	req := integrity.ExportRequest{
		ExportPath: src.Resolve(root, vcfg.ExportPath),
		Platform:   integrityOpts.platform,
	}
	if integrityOpts.manifestPath != "" {
		req.ManifestPath = src.Resolve(root, integrityOpts.manifestPath)
	}

	var db *gorm.DB
	if integrityOpts.history {
		if db, err = database.Connect(cfg.Database); err != nil {
			return err
		}
	}

	svc := integrity.NewService(src, logg, db)
	report, err := svc.CheckExport(ctx, req)
	if err != nil {
		return err
	}

	if err := integrity.WriteExportReport(cmd.OutOrStdout(), integrityOpts.output, report); err != nil {
		return err
	}

	ok := report.OK()
	if integrityOpts.history {
		history, err := svc.CheckHistory()
		if err != nil {
			return err
		}
		if !history.Matched {
			logg.Warn("History table does not match the report model",
				zap.String("table", history.Table),
				zap.Strings("missing_columns", history.MissingColumns),
				zap.Strings("errors", history.Errors),
			)
			ok = false
		}
	}

	if !ok {
		return fmt.Errorf("%w: %s", integrity.ErrPreflightFailed, report.ExportPath)
	}
	return nil
}

func init() {
	f := integrityCmd.Flags()
	f.StringVar(&integrityOpts.exportPath, "export-path", "", "export directory (default from VERIFY_EXPORT_PATH or ./dist)")
	f.StringVar(&integrityOpts.manifestPath, "embedded-manifest-path", "", "also check that this embedded app.manifest exists")
	f.StringVarP(&integrityOpts.platform, "platform", "p", "", "fail when the export metadata lacks this platform")
	f.StringVar(&integrityOpts.source, "source", "", "artifact source (local, bucket)")
	f.StringVarP(&integrityOpts.output, "output", "o", assets.FormatText, "output format (text, json, yaml)")
	f.BoolVarP(&integrityOpts.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&integrityOpts.history, "history", false, "also check the history table schema")

	RootCmd.AddCommand(integrityCmd)
}
