package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lMelkorl/b2bminiui/dashboard/services"
	"github.com/lMelkorl/b2bminiui/internal/database/postgres"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	platformconfig "github.com/lMelkorl/b2bminiui/internal/platform/config"
	"github.com/lMelkorl/b2bminiui/internal/utils"
	orderRepository "github.com/lMelkorl/b2bminiui/orders/repository"
	productRepository "github.com/lMelkorl/b2bminiui/products/repository"
)

// NewSummaryCommand prints the dashboard figures for the fixture.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:          "summary",
		Short:        "Print revenue, order and stock totals",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := rootOpts.dataset()
			if err != nil {
				return err
			}
			svc := services.NewSummaryService(
				productRepository.NewMemoryRepository(ds.Products),
				orderRepository.NewMemoryRepository(ds.Orders),
				threshold,
			)
			summary, err := svc.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return rootOpts.write(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().IntVar(&threshold, "low-stock", 10, "stock level below which a product counts as low")
	return cmd
}

// NewKeygenCommand prints a fresh ES256 key pair for JWT_PRIVATE_KEY and
// JWT_PUBLIC_KEY.
func NewKeygenCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "keygen",
		Short:        "Generate an ES256 signing key pair",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, pub, err := utils.GenerateKeyPairPEM()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", priv, pub)
			return err
		},
	}
}

// NewSeedCommand creates the PostgreSQL schema and loads the fixture into it.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Migrate PostgreSQL and insert fixture rows",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn is required")
			}
			ds, err := rootOpts.dataset()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := postgres.NewClient(ctx, platformconfig.PostgreSQLConfig{
				DSN:             dsn,
				MaxOpenConns:    4,
				MaxIdleConns:    4,
				ConnMaxLifetime: time.Minute,
			})
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Migrate(ctx); err != nil {
				return err
			}
			if err := productRepository.SeedPostgres(ctx, client, ds.Products); err != nil {
				return err
			}
			if err := orderRepository.SeedPostgres(ctx, client, ds.Orders); err != nil {
				return err
			}
			log.Info("Seeded %d products and %d orders", len(ds.Products), len(ds.Orders))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string")
	return cmd
}
