package cli

import (
	"fmt"
	"net/http"

	"github.com/finsight/finsight/internal/mockserver"
	"github.com/finsight/finsight/pkg/api"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSeedCommand(s *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load or clear server demo data",
	}

	var opts api.SeedOptions
	var randomSeed int64
	load := &cobra.Command{
		Use:   "load",
		Short: "Populate the server with generated demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				opts.RandomSeed = &randomSeed
			}
			if err := s.deps.Store.SeedDemoLoad(cmd.Context(), opts); err != nil {
				return err
			}
			fmt.Printf("Seeded %d transactions.\n", len(s.deps.Store.Transactions()))
			return nil
		},
	}
	load.Flags().IntVar(&opts.MonthsBack, "months", 3, "months of history to generate")
	load.Flags().Float64Var(&opts.ApproxTotal, "total", 2500, "approximate monthly spend")
	load.Flags().Int64Var(&randomSeed, "seed", 0, "random seed for reproducible data")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove demo data from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.deps.Store.SeedDemoClear(cmd.Context())
		},
	}

	cmd.AddCommand(load)
	cmd.AddCommand(clearCmd)
	return cmd
}

func newDemoServerCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "demo-server",
		Short: "Run the in-memory demo API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mockserver.New(mockserver.SystemClock{})
			log.Infof("demo server listening on %s", addr)
			return http.ListenAndServe(addr, server.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	return cmd
}
