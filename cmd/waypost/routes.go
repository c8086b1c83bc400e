package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/pkg/router"
)

func routesCmd() *cobra.Command {
	var manifestPath string
	var byPriority bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the manifest's routes",
		Long: `List registered routes, boundaries, and status pages.

With --priority the routes are sorted by specificity (static before
dynamic, more segments first, catch-alls last) instead of registration
order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.LoadFile(manifestPath)
			if err != nil {
				return err
			}
			if _, err := router.New(m); err != nil {
				return err
			}

			entries := m.Routes
			if byPriority {
				entries = append([]*router.RouteEntry(nil), m.Routes...)
				router.SortBySpecificity(entries)
			}

			fmt.Printf("%d routes:\n", len(entries))
			for _, entry := range entries {
				info("%s", describeEntry(entry))
			}

			if len(m.Boundaries) > 0 {
				fmt.Printf("%d boundaries:\n", len(m.Boundaries))
				for _, b := range m.Boundaries {
					info("%-40s %s", b.Pattern, b.Module)
				}
			}

			if len(m.StatusRoutes) > 0 {
				fmt.Printf("%d status pages:\n", len(m.StatusRoutes))
				for code, entry := range m.StatusRoutes {
					info("%-40d %s", code, entry.Module)
				}
			}

			if m.RootError != nil {
				fmt.Println("root error handler:")
				info("%s", m.RootError.Module)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", config.ManifestFileName, "Path to the manifest file")
	cmd.Flags().BoolVarP(&byPriority, "priority", "p", false, "Sort by specificity instead of registration order")

	return cmd
}
