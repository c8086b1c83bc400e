package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/pkg/router"
)

func lintCmd() *cobra.Command {
	var manifestPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a manifest for silent ambiguities",
		Long: `Validate the manifest for conditions the matcher resolves silently:
duplicate registrations, shadowed parameter names, unroutable redirect
targets, and suspicious status codes.

These are diagnostics, not build errors; the matcher accepts the
manifest either way. With --strict, any diagnostic sets a non-zero
exit code for CI use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.LoadFile(manifestPath)
			if err != nil {
				return err
			}

			err = router.NewValidator(m).Validate()
			if err == nil {
				success("manifest is clean (%d routes, %d boundaries)", len(m.Routes), len(m.Boundaries))
				return nil
			}

			var multi *router.MultiValidationError
			if !errors.As(err, &multi) {
				return err
			}

			for _, diag := range multi.Errors {
				fmt.Print(router.FormatValidationError(diag))
			}
			warn("%d issue(s) found", len(multi.Errors))

			if strict {
				return fmt.Errorf("%d validation issue(s)", len(multi.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", config.ManifestFileName, "Path to the manifest file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when diagnostics are found")

	return cmd
}
