package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var platform, genre, year string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search custom games and the external catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			params.Set("q", strings.Join(args, " "))
			if platform != "" {
				params.Set("platform", platform)
			}
			if genre != "" {
				params.Set("genre", genre)
			}
			if year != "" {
				params.Set("year", year)
			}

			var result GameList
			if err := client.Get(cmd.Context(), "/api/games/search?"+params.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform filter")
	cmd.Flags().StringVar(&genre, "genre", "", "Genre filter")
	cmd.Flags().StringVar(&year, "year", "", "Release year filter")

	return cmd
}

func newCustomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "custom",
		Short: "List custom games, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList
			if err := client.Get(cmd.Context(), "/api/games/custom", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one game from either source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameDetail
			if err := client.Get(cmd.Context(), "/api/games/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var (
		name, released, description, image string
		rating                              float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom game (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return errors.New("not logged in: run 'gamevault login' first")
			}

			req := map[string]any{
				"name":   name,
				"rating": rating,
			}
			if released != "" {
				req["released"] = released
			}
			if description != "" {
				req["description"] = description
			}
			if image != "" {
				req["background_image"] = image
			}

			var result CreateResult
			if err := client.Post(cmd.Context(), "/api/games", req, &result); err != nil {
				return fmt.Errorf("add game: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating from 0 to 5 (required)")
	cmd.Flags().StringVar(&released, "released", "", "Release date, YYYY-MM-DD")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&image, "image", "", "Background image URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}
