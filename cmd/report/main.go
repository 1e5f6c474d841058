package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/compliance-dashboard/internal/bootstrap"
	"alfredoptarigan/compliance-dashboard/internal/config"
	"alfredoptarigan/compliance-dashboard/internal/render"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

type options struct {
	backend string
	dataDir string
	source  string
	pair    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var components *bootstrap.Components

	root := &cobra.Command{
		Use:           "report",
		Short:         "Render compliance validation results in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if opts.backend != "" {
				cfg.Sources.Backend = opts.backend
			}
			if opts.dataDir != "" {
				cfg.Sources.DataDir = opts.dataDir
			}

			built, err := bootstrap.Build(cfg)
			if err != nil {
				_ = render.WriteError(cmd.ErrOrStderr(), err.Error())
				return errReported
			}
			components = built
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard := components.Dashboard

			source := opts.source
			if source == "" {
				sources := dashboard.Sources()
				if len(sources) == 0 {
					_ = render.WriteError(cmd.ErrOrStderr(), "No result sources configured.")
					return errReported
				}
				source = sources[0]
			}

			view, err := dashboard.View(cmd.Context(), source, opts.pair-1)
			if err != nil {
				_ = render.WriteError(cmd.ErrOrStderr(), services.ErrorMessage(source, opts.pair, err))
				if labels, labelErr := dashboard.PairLabels(cmd.Context()); labelErr == nil {
					_ = render.WriteLabels(cmd.ErrOrStderr(), "Available pairs", labels)
				}
				return errReported
			}

			return render.WriteDashboard(cmd.OutOrStdout(), view)
		},
	}

	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "source backend: file, postgres or mock (default from SOURCE_BACKEND)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the source files (default from DATA_DIR)")
	root.Flags().StringVar(&opts.source, "source", "", "result source to analyze (default: first configured)")
	root.Flags().IntVar(&opts.pair, "pair", 1, "document pair number, as shown by 'report pairs'")

	root.AddCommand(
		&cobra.Command{
			Use:   "pairs",
			Short: "List the selectable document pairs",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dashboard := components.Dashboard
				labels, err := dashboard.PairLabels(cmd.Context())
				if err != nil {
					_ = render.WriteError(cmd.ErrOrStderr(), services.ErrorMessage(dashboard.PairsSource(), 0, err))
					return errReported
				}
				return render.WriteLabels(cmd.OutOrStdout(), "Document pairs", labels)
			},
		},
		&cobra.Command{
			Use:   "sources",
			Short: "List the selectable result sources",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return render.WriteLabels(cmd.OutOrStdout(), "Result sources", components.Dashboard.Sources())
			},
		},
	)

	return root
}
