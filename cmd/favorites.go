package cmd

import (
	"context"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/session"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favoritos"},
	Short:   "List your favorite articles",
	Args:    cobra.NoArgs,
	RunE:    runFavorites,
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Favorite an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], false)
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an article from your favorites",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoriteAddCmd, favoriteRemoveCmd)
}

func runFavorites(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := openDevice()
	if err != nil {
		return err
	}
	if _, err := d.require(ctx, session.RoleUser); err != nil {
		return err
	}

	var favs []model.Article
	err = d.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		favs, err = d.client.ListFavorites(ctx, token)
		return err
	})
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if len(favs) == 0 {
		p.info("Você ainda não tem favoritos.")
		return nil
	}

	all := make(map[int64]bool, len(favs))
	for _, a := range favs {
		all[a.ID] = true
	}
	return p.table([]string{"ID", "Título", "Categoria", "Autor", "Fav"}, articleRows(favs, all))
}

// runToggle flips id from the favorited state the caller asserts.
func runToggle(cmd *cobra.Command, arg string, favorited bool) error {
	ctx := cmd.Context()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	d, err := openDevice()
	if err != nil {
		return err
	}
	if _, err := d.require(ctx, session.RoleUser); err != nil {
		return err
	}

	var now bool
	err = d.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		now, err = d.favorites.Toggle(ctx, token, id, favorited)
		return err
	})
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if now {
		p.success("Notícia %d adicionada aos favoritos.", id)
	} else {
		p.success("Notícia %d removida dos favoritos.", id)
	}
	return nil
}
