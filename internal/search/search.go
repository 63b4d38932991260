package search

import (
	"strings"
	"unicode"

	"github.com/ghaggin/newsgate/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter keeps the articles whose title, description, author or category
// contain term. Case and accents are ignored; a blank term keeps everything.
func Filter(articles []model.Article, term string) []model.Article {
	needle := fold(term)
	if needle == "" {
		return articles
	}

	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		for _, field := range []string{a.Title, a.Description, a.Author, a.Category} {
			if strings.Contains(fold(field), needle) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// ByCategory keeps the articles filed under category. An empty category
// keeps everything.
func ByCategory(articles []model.Article, category string) []model.Article {
	want := fold(category)
	if want == "" {
		return articles
	}

	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if fold(a.Category) == want {
			out = append(out, a)
		}
	}
	return out
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}
	return cases.Fold().String(stripped)
}
