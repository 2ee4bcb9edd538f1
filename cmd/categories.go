package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sainath-666/storefront/internal/model"
	"github.com/sainath-666/storefront/internal/storefront"
)

func newCategoriesCommand(svc *services) *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories, flat or as a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runCategories")
			c = logger.WithContext(c)

			browser := storefront.NewCategoryBrowser(svc.categories)
			if tree {
				if err := browser.LoadTree(c); err != nil {
					return err
				}
				printCategories(cmd, browser.Tree(), 0)
				return nil
			}

			browser.Load(c)
			if message := browser.ErrMessage(); message != "" {
				return fmt.Errorf("%s", message)
			}
			categories := browser.Categories()
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
				return nil
			}
			printCategories(cmd, storefront.Nest(categories), 0)
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "fetch the pre-nested hierarchy")
	return cmd
}

func printCategories(cmd *cobra.Command, categories []model.Category, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, category := range categories {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%d\t%s\n", indent, category.CategoryId, category.CategoryName)
		printCategories(cmd, category.SubCategories, depth+1)
	}
}

func parseId(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q with error=%w", raw, err)
	}
	return id, nil
}
