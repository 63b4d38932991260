package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ana = model.User{ID: 1, Name: "Ana", Email: "ana@news.com"}

type fakeBackend struct {
	t *testing.T

	mu        sync.Mutex
	user      model.User
	favorites map[string]bool
	signups   atomic.Int32
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reply := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(b.t, json.NewEncoder(w).Encode(v))
	}

	authed := r.Header.Get("Authorization") == "Bearer tok"

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		var creds api.Credentials
		assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "segredo" {
			reply(http.StatusUnauthorized, map[string]string{"error": "Credenciais inválidas"})
			return
		}
		reply(http.StatusOK, api.LoginResult{Token: "tok", User: b.user})
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/cadastro":
		b.signups.Add(1)
		reply(http.StatusCreated, map[string]string{})
	case r.Method == http.MethodGet && r.URL.Path == "/api/noticias/1":
		reply(http.StatusOK, model.Article{
			ID: 1, Title: "Final do campeonato", Author: "Ana", Category: "Esportes",
			Description: "<p>Jogo <b>decisivo</b></p>", Link: "https://news.com/final", PublishedAt: "2024-05-01",
		})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/noticias/"):
		reply(http.StatusNotFound, map[string]string{"error": "Notícia não encontrada"})
	case r.URL.Path == "/api/noticias":
		reply(http.StatusOK, []model.Article{
			{ID: 1, Title: "Final do campeonato", Author: "Ana", Category: "Esportes"},
			{ID: 2, Title: "Mercado em alta", Author: "Caio", Category: "Negócios"},
		})
	case !authed:
		reply(http.StatusUnauthorized, map[string]string{"error": "Token inválido"})
	case r.Method == http.MethodGet && r.URL.Path == "/api/usuarios/perfil":
		reply(http.StatusOK, b.user)
	case r.Method == http.MethodPut && r.URL.Path == "/api/usuarios/perfil":
		var update api.ProfileUpdate
		assert.NoError(b.t, json.NewDecoder(r.Body).Decode(&update))
		b.user.Name = update.Name
		b.user.Email = update.Email
		reply(http.StatusOK, b.user)
	case r.Method == http.MethodGet && r.URL.Path == "/api/usuarios/favoritos":
		favs := []model.Article{}
		if b.favorites["2"] {
			favs = append(favs, model.Article{ID: 2, Title: "Mercado em alta", Author: "Caio", Category: "Negócios"})
		}
		reply(http.StatusOK, favs)
	case r.Method == http.MethodPost && r.URL.Path == "/api/usuarios/favoritos/2":
		b.favorites["2"] = true
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/usuarios/favoritos/2":
		delete(b.favorites, "2")
		w.WriteHeader(http.StatusNoContent)
	default:
		reply(http.StatusNotFound, map[string]string{"error": "não encontrado"})
	}
}

func (b *fakeBackend) userName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.user.Name
}

type cli struct {
	backend *fakeBackend
	config  string
	session string
}

func setupCLI(t *testing.T) *cli {
	t.Helper()

	b := &fakeBackend{t: t, user: ana, favorites: map[string]bool{}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	c := &cli{
		backend: b,
		config:  filepath.Join(dir, "config.yaml"),
		session: filepath.Join(dir, "session.json"),
	}

	yaml := fmt.Sprintf("backend:\n  base_url: %s/api\ncli:\n  session_path: %s\nlog:\n  level: error\n", srv.URL, c.session)
	require.NoError(t, os.WriteFile(c.config, []byte(yaml), 0o600))

	return c
}

func (c *cli) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(append([]string{"--config", c.config, "--no-color"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags undoes what earlier runs in this process set on the shared
// command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestLoginFavoritesLogout(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	c := setupCLI(t)

	out, _, err := c.run(t, "login", "--email", "ana@news.com", "--senha", "segredo")
	require.NoError(err)
	assert.Contains(out, "Bem-vindo, Ana!")
	assert.FileExists(c.session)

	out, _, err = c.run(t, "favorites", "add", "2")
	require.NoError(err)
	assert.Contains(out, "adicionada aos favoritos")

	out, _, err = c.run(t, "favorites")
	require.NoError(err)
	assert.Contains(out, "Mercado em alta")

	out, _, err = c.run(t, "articles", "--categoria", "", "--busca", "mercado")
	require.NoError(err)
	assert.Contains(out, "Mercado em alta")
	assert.Contains(out, "★")
	assert.NotContains(out, "campeonato")

	out, _, err = c.run(t, "favorites", "remove", "2")
	require.NoError(err)
	assert.Contains(out, "removida dos favoritos")

	_, _, err = c.run(t, "logout")
	require.NoError(err)

	_, _, err = c.run(t, "favorites")
	assert.ErrorIs(err, errSignedOut)
}

func TestLogin_badCredentials(t *testing.T) {
	c := setupCLI(t)

	_, _, err := c.run(t, "login", "--email", "ana@news.com", "--senha", "errada")
	require.Error(t, err)
	assert.Equal(t, "Credenciais inválidas", err.Error())
	assert.NoFileExists(t, c.session)
}

func TestSignup_invalidSkipsBackend(t *testing.T) {
	c := setupCLI(t)

	_, stderr, err := c.run(t, "signup", "--nome", "", "--email", "x", "--senha", "123", "--confirmar", "")
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, stderr, "nome obrigatório")
	assert.Contains(t, stderr, "senhas não coincidem")
	assert.Zero(t, c.backend.signups.Load())
}

func TestArticles_signedOut(t *testing.T) {
	c := setupCLI(t)

	out, _, err := c.run(t, "articles", "--categoria", "esportes", "--busca", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Final do campeonato")
	assert.NotContains(t, out, "Mercado")
}

func TestDescribe(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(errSignedOut.Error(), describe(session.ErrNoSession))
	assert.Equal("Sessão expirada. Faça login novamente.",
		describe(fmt.Errorf("%w: %w", session.ErrExpired, &api.UnauthorizedError{})))
	assert.Equal("Falha no servidor", describe(&api.StatusError{Code: 500, Message: "Falha no servidor"}))
	assert.Equal("id inválido", describe(errors.New("id inválido")))
}

func TestProfile_showAndUpdate(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	c := setupCLI(t)

	_, _, err := c.run(t, "profile")
	assert.ErrorIs(err, errSignedOut)

	_, _, err = c.run(t, "login", "--email", "ana@news.com", "--senha", "segredo")
	require.NoError(err)

	out, _, err := c.run(t, "profile")
	require.NoError(err)
	assert.Contains(out, "Nome:   Ana")
	assert.Contains(out, "Perfil: leitor")

	_, stderr, err := c.run(t, "profile", "--senha", "ãéíóú")
	assert.ErrorIs(err, errInvalidForm)
	assert.Contains(stderr, "mínimo 6 caracteres")

	out, _, err = c.run(t, "profile", "--nome", "Ana Lima")
	require.NoError(err)
	assert.Contains(out, "Perfil atualizado com sucesso!")
	assert.Contains(out, "Nome:   Ana Lima")
	assert.Equal("Ana Lima", c.backend.userName())
}

func TestProfile_admin(t *testing.T) {
	c := setupCLI(t)
	c.backend.user = model.User{ID: 9, Name: "Bia", Email: "bia@news.com", IsAdmin: true}

	_, _, err := c.run(t, "login", "--email", "bia@news.com", "--senha", "segredo")
	require.NoError(t, err)

	out, _, err := c.run(t, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Perfil: administrador")
}

func TestArticleShow(t *testing.T) {
	c := setupCLI(t)

	out, _, err := c.run(t, "articles", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Final do campeonato")
	assert.Contains(t, out, "Jogo decisivo")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "https://news.com/final")

	_, _, err = c.run(t, "articles", "show", "abc")
	assert.EqualError(t, err, `id inválido: "abc"`)

	_, _, err = c.run(t, "articles", "show", "7")
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}
