package auth

import (
	"encoding/json"
	"os"
)

// clientSecrets matches the credential files downloadable from the Google
// and Facebook developer consoles.
type clientSecrets struct {
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		AppID        string `json:"app_id"`
		AppSecret    string `json:"app_secret"`
	} `json:"web"`
}

// loadSecrets reads the credential file on every call. The files are tiny,
// and re-reading keeps rotated credentials live without a restart.
func loadSecrets(path string) (clientSecrets, error) {
	var secrets clientSecrets
	data, err := os.ReadFile(path)
	if err != nil {
		return secrets, err
	}
	if err := json.Unmarshal(data, &secrets); err != nil {
		return secrets, err
	}
	return secrets, nil
}
