package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghaggin/newsgate/internal/model"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"usuario"`
}

type SignupRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type ProfileUpdate struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha,omitempty"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var res LoginResult
	if err := c.Request(ctx, http.MethodPost, "/auth/login", "", creds, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &StatusError{Code: http.StatusBadGateway, Message: "Resposta de login sem token"}
	}
	return &res, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.Request(ctx, http.MethodPost, "/auth/cadastro", "", req, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (*model.User, error) {
	var u model.User
	if err := c.Request(ctx, http.MethodGet, "/usuarios/perfil", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*model.User, error) {
	var u model.User
	if err := c.Request(ctx, http.MethodPut, "/usuarios/perfil", token, update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	articles := []model.Article{}
	if err := c.Request(ctx, http.MethodGet, "/noticias", "", nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	if err := c.Request(ctx, http.MethodGet, articlePath(id), "", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateArticle(ctx context.Context, token string, a model.Article) (*model.Article, error) {
	a.ID = 0
	var created model.Article
	if err := c.Request(ctx, http.MethodPost, "/noticias", token, a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateArticle(ctx context.Context, token string, id int64, a model.Article) (*model.Article, error) {
	a.ID = 0
	updated := model.Article{}
	if err := c.Request(ctx, http.MethodPut, articlePath(id), token, a, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		// some backends answer updates with a bare acknowledgement
		a.ID = id
		return &a, nil
	}
	return &updated, nil
}

func (c *Client) DeleteArticle(ctx context.Context, token string, id int64) error {
	return c.Request(ctx, http.MethodDelete, articlePath(id), token, nil, nil)
}

func (c *Client) ListFavorites(ctx context.Context, token string) ([]model.Article, error) {
	favorites := []model.Article{}
	if err := c.Request(ctx, http.MethodGet, "/usuarios/favoritos", token, nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (c *Client) AddFavorite(ctx context.Context, token string, id int64) error {
	return c.Request(ctx, http.MethodPost, favoritePath(id), token, nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, id int64) error {
	return c.Request(ctx, http.MethodDelete, favoritePath(id), token, nil, nil)
}

func articlePath(id int64) string {
	return fmt.Sprintf("/noticias/%d", id)
}

func favoritePath(id int64) string {
	return fmt.Sprintf("/usuarios/favoritos/%d", id)
}
