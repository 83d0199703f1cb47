package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

var searchModes = []string{"web", "ai", "academic", "video", "news", "images", "shopping", "autocomplete"}

func newSearchCmd(st *appState) *cobra.Command {
	var (
		mode     string
		limit    int
		category string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one search and print the JSON envelope",
		Example: `  portal search golang generics
  portal search --mode academic --category cs --sort date "graph neural networks"
  portal search --mode news`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), st.cfg.Server.RequestTimeout)
			defer cancel()

			svc := buildServices(st.cfg, newMetrics(), st.logger)
			query := strings.Join(args, " ")
			opts := domain.SearchOptions{Limit: limit}

			var (
				resp any
				err  error
			)
			switch mode {
			case "web", "ai":
				resp, err = svc.web.Search(ctx, domain.WebSearchRequest{Query: query, Mode: domain.SearchMode(mode), Options: opts})
			case "academic":
				resp, err = svc.academic.Search(ctx, domain.AcademicSearchRequest{Query: query, Category: category, SortBy: domain.SortBy(sortBy)})
			case "video":
				resp, err = svc.video.Search(ctx, domain.VideoSearchRequest{Query: query, Options: opts})
			case "news":
				resp, err = svc.news.Search(ctx, domain.NewsSearchRequest{Query: query, Category: category, Options: opts})
			case "images":
				resp, err = svc.images.Search(ctx, domain.ImageSearchRequest{Query: query, Options: opts})
			case "shopping":
				resp, err = svc.shopping.Search(ctx, domain.ShoppingSearchRequest{Query: query, Options: opts})
			case "autocomplete":
				resp, err = svc.autocomplete.Suggest(ctx, domain.AutocompleteRequest{Query: query, Limit: limit})
			default:
				return fmt.Errorf("unknown mode %q (want one of %s)", mode, strings.Join(searchModes, ", "))
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "web", "search mode: "+strings.Join(searchModes, ", "))
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "result limit (mode default when 0)")
	cmd.Flags().StringVar(&category, "category", "", "academic or news category")
	cmd.Flags().StringVar(&sortBy, "sort", "", "academic sort: relevance, date, citations")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
