// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fda-fetch/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the openFDA drug adverse-event search API",
	Long: `Search sends one query to the drug adverse-event search endpoint and
prints the total number of matching reports and the drug names of the first
five. The query uses openFDA search syntax, e.g.
  patient.drug.openfda.brand_name:"Aspirin"

An API key in .secrets/openfda-api-key is sent when present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")

		_, err := search.SearchEvents(cmd.Context(), newHTTPClient(), cfg.Search, query, limit, os.Stdout, logger)
		return err
	},
}

func init() {
	searchCmd.Flags().String("query", search.DefaultQuery, "openFDA search expression")
	searchCmd.Flags().Int("limit", 5, "number of reports to request")
	searchCmd.Flags().String("search-url", search.DefaultURL, "drug-event search endpoint")
	bindFlags(viper.GetViper(), searchCmd.Flags(), map[string]string{
		"search-url": keySearchURL,
	})

	rootCmd.AddCommand(searchCmd)
}
