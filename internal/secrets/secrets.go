package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
)

// Credentials is the bundle stored in the managed secret store. The OAuth
// fields are optional and only present when the catalog-reference API is
// provisioned for the tenant.
type Credentials struct {
	APIToken         string `json:"api_token"`
	ConsumerKey      string `json:"consumer_key,omitempty"`
	ConsumerSecret   string `json:"consumer_secret,omitempty"`
	OAuthToken       string `json:"oauth_token,omitempty"`
	OAuthTokenSecret string `json:"oauth_token_secret,omitempty"`
}

// HasOAuth reports whether all four OAuth1 credential fields are present.
func (c *Credentials) HasOAuth() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.OAuthToken != "" && c.OAuthTokenSecret != ""
}

// TokenSource supplies a bearer token for the catalog API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token, used for local runs and tests.
type StaticTokenSource struct {
	token string
}

// NewStaticTokenSource creates a TokenSource around a fixed token.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", domainErrors.ErrSecretNotFound
	}
	return s.token, nil
}

// Store fetches the credential bundle from AWS Secrets Manager and caches it
// for the process lifetime. Concurrent first reads collapse into a single
// fetch via singleflight.
type Store struct {
	secretID string
	sm       secretsmanageriface.SecretsManagerAPI
	logger   zerolog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	cached *Credentials
}

// NewStore creates a secret store for the given secret id.
func NewStore(sm secretsmanageriface.SecretsManagerAPI, secretID string, logger zerolog.Logger) *Store {
	return &Store{
		secretID: secretID,
		sm:       sm,
		logger:   logger.With().Str("component", "secrets").Logger(),
	}
}

// Credentials returns the cached credential bundle, fetching it on first use.
func (s *Store) Credentials(ctx context.Context) (*Credentials, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(s.secretID, func() (any, error) {
		creds, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = creds
		s.mu.Unlock()
		return creds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Credentials), nil
}

// Token implements TokenSource from the cached bundle.
func (s *Store) Token(ctx context.Context) (string, error) {
	creds, err := s.Credentials(ctx)
	if err != nil {
		return "", err
	}
	if creds.APIToken == "" {
		return "", fmt.Errorf("secret %s: %w", s.secretID, domainErrors.ErrSecretNotFound)
	}
	return creds.APIToken, nil
}

func (s *Store) fetch(ctx context.Context) (*Credentials, error) {
	out, err := s.sm.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", s.secretID, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string payload: %w", s.secretID, domainErrors.ErrSecretMalformed)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return nil, fmt.Errorf("decode secret %s: %w", s.secretID, domainErrors.ErrSecretMalformed)
	}

	s.logger.Debug().Str("secret_id", s.secretID).Bool("oauth", creds.HasOAuth()).Msg("secret loaded")
	return &creds, nil
}
