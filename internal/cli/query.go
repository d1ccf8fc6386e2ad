package cli

import (
	"github.com/spf13/cobra"

	orderModels "github.com/lMelkorl/b2bminiui/orders/models"
	orderRepository "github.com/lMelkorl/b2bminiui/orders/repository"
	orderServices "github.com/lMelkorl/b2bminiui/orders/services"
	productModels "github.com/lMelkorl/b2bminiui/products/models"
	productRepository "github.com/lMelkorl/b2bminiui/products/repository"
	productServices "github.com/lMelkorl/b2bminiui/products/services"
)

// NewQueryCommand groups the filter/sort/limit queries.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, sort and limit catalog data",
	}
	cmd.AddCommand(newQueryProductsCommand(rootOpts))
	cmd.AddCommand(newQueryOrdersCommand(rootOpts))
	return cmd
}

func newQueryProductsCommand(rootOpts *RootOptions) *cobra.Command {
	var params productModels.ListQueryParams

	cmd := &cobra.Command{
		Use:          "products",
		Short:        "Query products",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := rootOpts.dataset()
			if err != nil {
				return err
			}
			svc := productServices.NewProductService(productRepository.NewMemoryRepository(ds.Products), nil)
			out, err := svc.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return rootOpts.write(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Search, "search", "", "case-insensitive match on name, description or material")
	f.StringVar(&params.Category, "category", "", "exact category (Tümü matches all)")
	f.StringVar(&params.MinPrice, "min-price", "", "lower price bound, inclusive")
	f.StringVar(&params.MaxPrice, "max-price", "", "upper price bound, inclusive")
	f.StringVar(&params.MinWeight, "min-weight", "", "lower weight bound in grams")
	f.StringVar(&params.MaxWeight, "max-weight", "", "upper weight bound in grams")
	f.StringVar(&params.Sort, "sort", "", "sort field (price|stock|createdAt)")
	f.StringVar(&params.Order, "order", "", "sort direction (asc|desc)")
	f.StringVar(&params.Limit, "limit", "", "maximum number of results")
	return cmd
}

func newQueryOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	var params orderModels.ListQueryParams

	cmd := &cobra.Command{
		Use:          "orders",
		Short:        "Query orders",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := rootOpts.dataset()
			if err != nil {
				return err
			}
			svc := orderServices.NewOrderService(orderRepository.NewMemoryRepository(ds.Orders), nil)
			out, err := svc.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return rootOpts.write(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Search, "search", "", "case-insensitive match on id, customer name or email")
	f.StringVar(&params.Status, "status", "", "exact status (Tümü matches all)")
	f.StringVar(&params.DateStart, "date-start", "", "earliest order date (YYYY-MM-DD or RFC3339)")
	f.StringVar(&params.DateEnd, "date-end", "", "latest order date, whole day when date-only")
	f.StringVar(&params.MinAmount, "min-amount", "", "lower total bound, inclusive")
	f.StringVar(&params.MaxAmount, "max-amount", "", "upper total bound, inclusive")
	f.StringVar(&params.Sort, "sort", "", "sort field (orderDate|totalAmount)")
	f.StringVar(&params.Order, "order", "", "sort direction (asc|desc)")
	f.StringVar(&params.Limit, "limit", "", "maximum number of results")
	return cmd
}
