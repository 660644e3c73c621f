package cmd

import (
	"fmt"

	"asset-verifier/core/config"
	"asset-verifier/core/database"
	"asset-verifier/core/logger"
	"asset-verifier/feature/assets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyFlags holds the flags of the verify command.
type verifyFlags struct {
	exportPath   string
	manifestPath string
	platform     string
	source       string
	output       string
	record       bool
	verbose      bool
}

var verifyOpts verifyFlags

// apply overrides cfg with the flags that were set.
func (f verifyFlags) apply(cfg assets.Config) assets.Config {
	if f.exportPath != "" {
		cfg.ExportPath = f.exportPath
	}
	if f.manifestPath != "" {
		cfg.EmbeddedManifestPath = f.manifestPath
	}
	if f.platform != "" {
		cfg.Platform = f.platform
	}
	if f.source != "" {
		cfg.Source = f.source
	}
	cfg.Verbose = cfg.Verbose || f.verbose
	return cfg
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Verify that no exported asset is orphaned",
	Long: `Checks that every asset referenced by the export is either embedded in the
native build (its app.manifest) or shipped in the platform's over-the-air payload.

Relative paths resolve against [dir], or the working directory when omitted.
Exits 0 when every asset is covered, 1 when orphaned assets are found and 2
when the check could not run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if !assets.ValidFormat(verifyOpts.output) {
		return fmt.Errorf("unsupported output format %q", verifyOpts.output)
	}

	vcfg := verifyOpts.apply(cfg.Verify)

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

	opts, err := vcfg.Resolve(src, root)
	if err != nil {
		return err
	}

	var store *assets.ReportStore
	if verifyOpts.record {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		store = assets.NewReportStore(db)
		if err := store.Migrate(); err != nil {
			return err
		}
	}

	svc := assets.NewService(logg, store, 0)
	res, err := svc.Verify(ctx, src, opts)
	if err != nil {
		return err
	}

	view := assets.NewReportView(opts, res, vcfg.Verbose)
	if err := assets.WriteReport(cmd.OutOrStdout(), verifyOpts.output, view); err != nil {
		return err
	}

	if store != nil {
		if report, err := svc.Record(ctx, src.Name(), opts, res); err != nil {
			logg.Warn("Failed to record verification", zap.Error(err))
		} else {
			logg.Info("Recorded verification", zap.String("report_id", report.ID))
		}
	}

	if !res.Passed() {
		return fmt.Errorf("%w: %d asset(s) in neither the native build nor the %s export",
			assets.ErrOrphanedAssets, res.Summary.Orphaned, opts.Platform)
	}
	return nil
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyOpts.exportPath, "export-path", "", "export directory (default from VERIFY_EXPORT_PATH or ./dist)")
	f.StringVar(&verifyOpts.manifestPath, "embedded-manifest-path", "", "native build's embedded app.manifest")
	f.StringVarP(&verifyOpts.platform, "platform", "p", "", "target platform (ios, android)")
	f.StringVar(&verifyOpts.source, "source", "", "artifact source (local, bucket)")
	f.StringVarP(&verifyOpts.output, "output", "o", assets.FormatText, "output format (text, json, yaml)")
	f.BoolVar(&verifyOpts.record, "record", false, "store the outcome in the history database")
	f.BoolVarP(&verifyOpts.verbose, "verbose", "v", false, "log and print the three asset sets (or VERIFY_VERBOSE=true)")

	RootCmd.AddCommand(verifyCmd)
}
