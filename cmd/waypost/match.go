package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/pkg/router"
)

// loadRouter builds a router from the manifest file named by the flag.
func loadRouter(manifestPath string) (*router.Router, error) {
	m, err := config.LoadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	return router.New(m)
}

func matchCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Resolve a path to its route",
		Long: `Resolve a URL path against the manifest and print the matched
route with its extracted parameters.

Examples:
  waypost match /projects/123
  waypost match --manifest build/waypost.json /docs/guides/intro`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRouter(manifestPath)
			if err != nil {
				return err
			}

			path := args[0]
			result, ok := r.Match(path)
			if !ok {
				warn("no route matches %s", path)
				if entry, has := r.StatusRoute(404); has {
					info("404 falls back to %s", entry.Module)
				}
				return nil
			}

			success("%s → %s", path, result.Entry.Pattern)
			info("kind:   %s", result.Entry.Kind)
			if result.Entry.Kind == router.KindRedirect {
				info("target: %s", result.Entry.RedirectTo)
			} else {
				info("module: %s", result.Entry.Module)
			}
			for _, p := range result.Params {
				info("param:  %s = %q", p.Name, p.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", config.ManifestFileName, "Path to the manifest file")

	return cmd
}

func boundaryCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "boundary <path>",
		Short: "Find the error boundary enclosing a path",
		Long: `Walk the route tree toward a path without backtracking and print
the deepest error boundary seen along the way.

Example:
  waypost boundary /projects/123/settings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRouter(manifestPath)
			if err != nil {
				return err
			}

			path := args[0]
			boundary, ok := r.FindBoundary(path)
			if !ok {
				warn("no boundary encloses %s", path)
				return nil
			}

			success("%s → %s", path, boundary.Path)
			info("module: %s", boundary.Module)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", config.ManifestFileName, "Path to the manifest file")

	return cmd
}

// describeEntry formats a one-line route summary for listings.
func describeEntry(entry *router.RouteEntry) string {
	if entry.Kind == router.KindRedirect {
		return fmt.Sprintf("%-40s redirect → %s", entry.Pattern, entry.RedirectTo)
	}
	return fmt.Sprintf("%-40s %s", entry.Pattern, entry.Module)
}
