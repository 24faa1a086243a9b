// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// SelectionOptions captures common recipe selection flags for commands.
type SelectionOptions struct {
	Category  string
	Favorites bool
	Recipe    string
}

// AddCategoryArgs wires category-related flags on the provided command.
func AddCategoryArgs(cmd *cobra.Command, o *SelectionOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Specify a category by name.")
	cmd.Flags().BoolVar(&o.Favorites, "favorites", false,
		"Only favorite recipes.")
}

// AddRecipeArgs registers the flag that selects one recipe.
func AddRecipeArgs(cmd *cobra.Command, o *SelectionOptions) {
	cmd.Flags().StringVarP(&o.Recipe, "recipe", "r", "",
		"Show one recipe by id or title.")
}
