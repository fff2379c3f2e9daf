package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Facebook swaps the client's short-lived token for a long-lived one via
// the graph token endpoint, then reads the profile from /me.
type Facebook struct {
	SecretsPath string

	// GraphURL defaults to Facebook's graph API and is overridable in
	// tests.
	GraphURL string
}

// NewFacebook builds the Facebook provider around an app secrets file.
func NewFacebook(secretsPath string) *Facebook {
	return &Facebook{
		SecretsPath: secretsPath,
		GraphURL:    "https://graph.facebook.com/v3.2",
	}
}

func (f *Facebook) Name() string {
	return "facebook"
}

// graphError is the error object Facebook embeds in failed responses.
type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Exchange swaps the short-lived token for a long-lived access token.
func (f *Facebook) Exchange(ctx context.Context, shortToken string) (string, error) {
	secrets, err := loadSecrets(f.SecretsPath)
	if err != nil {
		return "", err
	}

	exchangeURL := fmt.Sprintf(
		"%s/oauth/access_token?grant_type=fb_exchange_token&client_id=%s&client_secret=%s&fb_exchange_token=%s",
		f.GraphURL,
		url.QueryEscape(secrets.Web.AppID),
		url.QueryEscape(secrets.Web.AppSecret),
		url.QueryEscape(shortToken),
	)

	var result struct {
		AccessToken string      `json:"access_token"`
		Error       *graphError `json:"error"`
	}
	if err := getJSON(ctx, exchangeURL, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("graph: %s", result.Error.Message)
	}
	if result.AccessToken == "" {
		return "", errors.New("graph: response missing access token")
	}
	return result.AccessToken, nil
}

// Verify confirms the token resolves to an account and returns its id.
func (f *Facebook) Verify(ctx context.Context, accessToken string) (string, error) {
	var result struct {
		ID    string      `json:"id"`
		Error *graphError `json:"error"`
	}
	err := getJSON(ctx, f.GraphURL+"/me?fields=id&access_token="+url.QueryEscape(accessToken), &result)
	if err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("graph: %s", result.Error.Message)
	}
	if result.ID == "" {
		return "", errors.New("graph: response missing account id")
	}
	return result.ID, nil
}

// FetchProfile reads the user's name, email, and picture from /me.
func (f *Facebook) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	var data struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
		Error *graphError `json:"error"`
	}
	err := getJSON(ctx, f.GraphURL+"/me?fields=id,name,email,picture&access_token="+url.QueryEscape(accessToken), &data)
	if err != nil {
		return Profile{}, err
	}
	if data.Error != nil {
		return Profile{}, fmt.Errorf("graph: %s", data.Error.Message)
	}
	if data.Email == "" {
		return Profile{}, errors.New("graph: response missing email")
	}
	return Profile{
		Subject: data.ID,
		Name:    data.Name,
		Email:   data.Email,
		Picture: data.Picture.Data.URL,
	}, nil
}
