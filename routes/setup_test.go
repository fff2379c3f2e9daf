package routes

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/abequinonez/udacity-item-catalog/auth"
	"github.com/abequinonez/udacity-item-catalog/models"
	"github.com/abequinonez/udacity-item-catalog/store"
)

// fakeProvider stands in for an identity provider. Its fields can be
// mutated between requests to play different accounts and failures.
type fakeProvider struct {
	name        string
	profile     auth.Profile
	exchangeErr error
	verifyErr   error
	profileErr  error
}

func (f *fakeProvider) Name() string {
	if f.name == "" {
		return "google"
	}
	return f.name
}

func (f *fakeProvider) Exchange(context.Context, string) (string, error) {
	return "access-token", f.exchangeErr
}

func (f *fakeProvider) Verify(context.Context, string) (string, error) {
	return f.profile.Subject, f.verifyErr
}

func (f *fakeProvider) FetchProfile(context.Context, string) (auth.Profile, error) {
	return f.profile, f.profileErr
}

func newTestApp(t *testing.T) (*gin.Engine, *store.Store, *fakeProvider) {
	t.Helper()
	google := &fakeProvider{name: "google"}
	r, st := newTestAppWith(t, google, &fakeProvider{name: "facebook"})
	return r, st, google
}

func newTestAppWith(t *testing.T, google, facebook auth.Provider) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.SeedCategories(); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	r := gin.New()
	r.Use(sessions.Sessions("catalog_session", cookie.NewStore([]byte("test-session-secret"))))
	r.SetFuncMap(template.FuncMap{
		"pathseg": func(s string) string {
			return url.PathEscape(strings.ToLower(s))
		},
	})
	r.LoadHTMLGlob("../templates/*.html")
	SetupRoutes(r, st.DB(), google, facebook)
	return r, st
}

// client replays cookies between requests, standing in for a browser.
type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *client {
	return &client{t: t, r: r, cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (cl *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

var stateTokenRe = regexp.MustCompile(`name="state" content="([^"]+)"`)

// fetchState loads the login page and pulls the anti-forgery token out of
// the rendered markup.
func (cl *client) fetchState() string {
	w := cl.get("/login")
	if w.Code != http.StatusOK {
		cl.t.Fatalf("login page: %d", w.Code)
	}
	m := stateTokenRe.FindStringSubmatch(w.Body.String())
	if m == nil {
		cl.t.Fatal("no state token on the login page")
	}
	return m[1]
}

func (cl *client) connect(endpoint, state, credential string) *httptest.ResponseRecorder {
	target := endpoint + "?state=" + url.QueryEscape(state)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(credential))
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return cl.do(req)
}

// login runs the full connect flow against the fake provider.
func (cl *client) login(fp *fakeProvider, profile auth.Profile) {
	cl.t.Helper()
	fp.profile = profile
	w := cl.connect("/gconnect", cl.fetchState(), "auth-code")
	if w.Code != http.StatusOK {
		cl.t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
}

func mustCreateUser(t *testing.T, st *store.Store, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email}
	if err := st.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateItem(t *testing.T, st *store.Store, catID, userID uint, name, description string) models.Item {
	t.Helper()
	item := models.Item{Name: name, Description: description, CatID: catID, UserID: userID}
	if err := st.CreateItem(&item); err != nil {
		t.Fatalf("create item %q: %v", name, err)
	}
	return item
}
