package form

import (
	"strings"

	"github.com/ghaggin/newsgate/internal/model"
)

// Article is the admin create/edit form.
type Article struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Author      string `json:"autor"`
	Category    string `json:"categoria"`
	ImageURL    string `json:"imagemURL"`
	Link        string `json:"link"`
}

// ArticleFrom prefills the edit form.
func ArticleFrom(a model.Article) Article {
	return Article{
		Title:       a.Title,
		Description: a.Description,
		Author:      a.Author,
		Category:    a.Category,
		ImageURL:    a.ImageURL,
		Link:        a.Link,
	}
}

func (f Article) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.add("titulo", MsgTitleRequired)
	}
	if strings.TrimSpace(f.Description) == "" {
		errs.add("descricao", MsgDescriptionRequired)
	}
	if strings.TrimSpace(f.Author) == "" {
		errs.add("autor", MsgAuthorRequired)
	}

	switch category := strings.TrimSpace(f.Category); {
	case category == "":
		errs.add("categoria", MsgCategoryRequired)
	case !knownCategory(category):
		errs.add("categoria", MsgCategoryInvalid)
	}

	if link := strings.TrimSpace(f.Link); link != "" && !validURL(link) {
		errs.add("link", MsgLinkInvalid)
	}
	if img := strings.TrimSpace(f.ImageURL); img != "" && !validURL(img) {
		errs.add("imagemURL", MsgImageInvalid)
	}
	return errs
}

// Model returns the trimmed article to submit.
func (f Article) Model(id int64) model.Article {
	return model.Article{
		ID:          id,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Author:      strings.TrimSpace(f.Author),
		Category:    strings.TrimSpace(f.Category),
		ImageURL:    strings.TrimSpace(f.ImageURL),
		Link:        strings.TrimSpace(f.Link),
	}
}

// Changed reports whether the form differs from the article it was opened on.
func (f Article) Changed(original model.Article) bool {
	return f.Model(original.ID) != ArticleFrom(original).Model(original.ID)
}

func knownCategory(c string) bool {
	for _, known := range model.Categories {
		if strings.EqualFold(c, known) {
			return true
		}
	}
	return false
}
