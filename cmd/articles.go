package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/render"
	"github.com/ghaggin/newsgate/internal/search"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	flagCategory string
	flagSearch   string
)

var articlesCmd = &cobra.Command{
	Use:     "articles",
	Aliases: []string{"noticias"},
	Short:   "List articles",
	Long: `List the published articles, optionally narrowed to one category or to
those whose title, description, author or category contain a term.

Examples:
  newsgate articles
  newsgate articles --categoria Tecnologia
  newsgate articles --busca eleição`,
	Args: cobra.NoArgs,
	RunE: runArticles,
}

var articleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleShow,
}

func init() {
	rootCmd.AddCommand(articlesCmd)
	articlesCmd.AddCommand(articleShowCmd)

	articlesCmd.Flags().StringVar(&flagCategory, "categoria", "", "only this category")
	articlesCmd.Flags().StringVar(&flagSearch, "busca", "", "search term")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", arg)
	}
	return id, nil
}

func runArticles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := openDevice()
	if err != nil {
		return err
	}

	var (
		articles  []model.Article
		favorites map[int64]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = d.client.ListArticles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = d.favoriteIDs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	articles = search.ByCategory(articles, flagCategory)
	articles = search.Filter(articles, flagSearch)

	p := newPrinter(cmd)
	if len(articles) == 0 {
		p.info("Nenhuma notícia encontrada.")
		return nil
	}
	return p.table([]string{"ID", "Título", "Categoria", "Autor", "Fav"}, articleRows(articles, favorites))
}

func runArticleShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	d, err := openDevice()
	if err != nil {
		return err
	}

	a, err := d.client.GetArticle(cmd.Context(), id)
	if err != nil {
		return err
	}

	s := render.NewSanitizer()
	clean := s.Summary(*a)

	p := newPrinter(cmd)
	p.info("%s", clean.Title)
	p.info("%s | %s | %s", clean.Category, clean.Author, a.PublishedAt)
	p.info("")
	p.info("%s", clean.Description)
	if a.Link != "" {
		p.info("")
		p.info("%s", a.Link)
	}
	return nil
}

// favoriteIDs is empty for a signed-out device or an admin.
func (d *device) favoriteIDs(ctx context.Context) (map[int64]bool, error) {
	sess, err := d.sessions.Get(ctx)
	if err != nil || d.sessions.Expired(sess) || (sess.User != nil && sess.User.IsAdmin) {
		return nil, nil
	}

	var favs []model.Article
	err = d.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		favs, err = d.client.ListFavorites(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]bool, len(favs))
	for _, a := range favs {
		ids[a.ID] = true
	}
	return ids, nil
}

func articleRows(articles []model.Article, favorites map[int64]bool) [][]string {
	s := render.NewSanitizer()

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		a = s.Summary(a)
		fav := ""
		if favorites[a.ID] {
			fav = "★"
		}
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Title, a.Category, a.Author, fav})
	}
	return rows
}
