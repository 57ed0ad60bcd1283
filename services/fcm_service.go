package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"
)

// FCMService sends push notifications through the Firebase Cloud Messaging
// HTTP v1 API. Tokens for the target users live in the device_token table.
type FCMService struct {
	projectID   string
	db          *sql.DB
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
}

type serviceAccountCredentials struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

// NewFCMService initializes the FCM client from a service account JSON file.
func NewFCMService(credentialsPath string, db *sql.DB) (*FCMService, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("credentials path is required")
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("error reading credentials file: %v", err)
	}

	var creds serviceAccountCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("error parsing credentials: %v", err)
	}
	if creds.ProjectID == "" || creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("credentials file is missing project_id, client_email or private_key")
	}

	config := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(creds.PrivateKey, "\\n", "\n")),
		Scopes:     []string{"https://www.googleapis.com/auth/firebase.messaging"},
		TokenURL:   creds.TokenURI,
	}

	return &FCMService{
		projectID:   creds.ProjectID,
		db:          db,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		tokenSource: config.TokenSource(context.Background()),
	}, nil
}

// SendToUser pushes one notification to every registered device of a user.
// Delivery failures are logged per token, not surfaced: a dead token must
// never fail a plan transition.
func (s *FCMService) SendToUser(userID int, title, body string, data map[string]string) error {
	rows, err := s.db.Query(`SELECT token FROM device_token WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to load device tokens for user %d: %v", userID, err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, token := range tokens {
		if err := s.send(token, title, body, data); err != nil {
			log.Printf("FCM send failed for user %d: %v", userID, err)
		}
	}
	return nil
}

func (s *FCMService) send(deviceToken, title, body string, data map[string]string) error {
	accessToken, err := s.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %v", err)
	}

	payload := map[string]interface{}{
		"message": map[string]interface{}{
			"token": deviceToken,
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", s.projectID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("FCM returned status %d", resp.StatusCode)
	}
	return nil
}
