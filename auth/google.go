package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Google exchanges a one-time authorization code for credentials, then
// confirms the token's subject and audience against Google's tokeninfo
// endpoint before trusting any profile data.
type Google struct {
	SecretsPath string

	// Endpoint, TokenInfoURL, and ProfileURL default to Google's servers
	// and are overridable in tests.
	Endpoint     oauth2.Endpoint
	TokenInfoURL string
	ProfileURL   string
}

// NewGoogle builds the Google provider around a client secrets file.
func NewGoogle(secretsPath string) *Google {
	return &Google{
		SecretsPath:  secretsPath,
		Endpoint:     google.Endpoint,
		TokenInfoURL: "https://www.googleapis.com/oauth2/v1/tokeninfo",
		ProfileURL:   "https://www.googleapis.com/oauth2/v1/userinfo",
	}
}

func (g *Google) Name() string {
	return "google"
}

func (g *Google) config() (*oauth2.Config, string, error) {
	secrets, err := loadSecrets(g.SecretsPath)
	if err != nil {
		return nil, "", err
	}
	conf := &oauth2.Config{
		ClientID:     secrets.Web.ClientID,
		ClientSecret: secrets.Web.ClientSecret,
		// "postmessage" is the redirect value for codes obtained through
		// the browser sign-in flow.
		RedirectURL: "postmessage",
		Endpoint:    g.Endpoint,
	}
	return conf, secrets.Web.ClientID, nil
}

// Exchange swaps the authorization code for an access token.
func (g *Google) Exchange(ctx context.Context, code string) (string, error) {
	conf, _, err := g.config()
	if err != nil {
		return "", err
	}
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Verify asks tokeninfo about the access token and checks that it carries
// no error, names a subject, and was issued for this application.
func (g *Google) Verify(ctx context.Context, accessToken string) (string, error) {
	_, clientID, err := g.config()
	if err != nil {
		return "", err
	}

	var info struct {
		UserID   string `json:"user_id"`
		Audience string `json:"audience"`
		Error    string `json:"error"`
	}
	if err := getJSON(ctx, g.TokenInfoURL+"?access_token="+url.QueryEscape(accessToken), &info); err != nil {
		return "", err
	}

	if info.Error != "" {
		return "", fmt.Errorf("tokeninfo: %s", info.Error)
	}
	if info.UserID == "" {
		return "", errors.New("tokeninfo: missing subject")
	}
	if info.Audience != clientID {
		return "", errors.New("tokeninfo: audience does not match this application")
	}
	return info.UserID, nil
}

// FetchProfile reads the user's name, email, and picture.
func (g *Google) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	var data struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	err := getJSON(ctx, g.ProfileURL+"?alt=json&access_token="+url.QueryEscape(accessToken), &data)
	if err != nil {
		return Profile{}, err
	}
	if data.Email == "" {
		return Profile{}, errors.New("userinfo: response missing email")
	}
	return Profile{
		Subject: data.ID,
		Name:    data.Name,
		Email:   data.Email,
		Picture: data.Picture,
	}, nil
}

// getJSON performs a GET and decodes the JSON body. Provider calls are
// synchronous and carry the request's context; there is no retry.
func getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
