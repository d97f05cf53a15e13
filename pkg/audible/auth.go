package audible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// CaptchaFunc resolves a CAPTCHA challenge during sign-in. It receives
// the challenge image URL and returns the answer typed by the operator.
type CaptchaFunc func(imageURL string) (string, error)

// AuthService provides session management for the Audible API.
//
// Sessions are persisted to a local JSON file so that repeated runs do
// not have to go through the interactive sign-in flow.
type AuthService struct {
	client      *Client
	sessionFile string
}

// LoadSession reads the persisted session from the session file.
//
// Returns ErrNoSession when the file does not exist, cannot be read, or
// does not contain a token. Callers are expected to fall back to Login.
func (a *AuthService) LoadSession() (*Session, error) {
	if a.sessionFile == "" {
		return nil, ErrNoSession
	}

	data, err := os.ReadFile(a.sessionFile)
	if err != nil {
		return nil, ErrNoSession
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, ErrNoSession
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

// SaveSession persists a session to the session file with restrictive
// permissions, creating parent directories as needed.
func (a *AuthService) SaveSession(session *Session) error {
	if a.sessionFile == "" {
		return fmt.Errorf("audible: no session file configured")
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.sessionFile), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(a.sessionFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Login performs the interactive sign-in exchange and returns a fresh
// session. The session token is also set on the client.
//
// If the vendor answers with a CAPTCHA challenge, the captcha callback
// is invoked with the challenge image URL and the sign-in is retried
// once with the typed answer. A nil captcha callback fails the login
// when a challenge is issued.
//
// The exchange here is deliberately minimal: the full vendor auth
// protocol (device registration, token refresh) lives behind this
// endpoint and is not reimplemented by this package.
func (a *AuthService) Login(ctx context.Context, username, password string, captcha CaptchaFunc) (*Session, error) {
	attempt := loginRequest{Username: username, Password: password}

	for i := 0; i < 2; i++ {
		status, body, err := a.client.postJSON(ctx, a.client.authURL, attempt)
		if err != nil {
			return nil, err
		}

		var result loginResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to parse sign-in response: %w", err)
		}

		switch {
		case status == http.StatusOK && result.Token != "":
			session := &Session{
				Token:     result.Token,
				Region:    a.client.region,
				CreatedAt: time.Now().UTC(),
			}
			a.client.SetSession(session.Token)
			return session, nil

		case status == http.StatusPreconditionFailed && result.CaptchaURL != "":
			if captcha == nil {
				return nil, fmt.Errorf("audible: captcha challenge issued but no captcha handler configured")
			}
			a.client.logDebugf("audible: captcha challenge %s", result.CaptchaURL)
			answer, err := captcha(result.CaptchaURL)
			if err != nil {
				return nil, fmt.Errorf("captcha callback failed: %w", err)
			}
			attempt.ChallengeID = result.ChallengeID
			attempt.CaptchaAnswer = answer
			continue

		case status == http.StatusUnauthorized:
			return nil, ErrBadCredentials

		default:
			return nil, &Error{StatusCode: status, Message: result.Message}
		}
	}

	return nil, errors.New("audible: sign-in failed after captcha challenge")
}
