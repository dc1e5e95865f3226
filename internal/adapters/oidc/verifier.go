package oidc

// Package oidc provides optional local verification of exchanged access
// tokens against the internal auth service's OIDC issuer. The cookie itself
// is never validated here; it is forwarded downstream. This layer only
// hardens the exchanged bearer token when an issuer is configured.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/orbitalhq/console-api/internal/ports"
)

// VerifierConfig holds configuration for the token verifier.
type VerifierConfig struct {
	IssuerURL  string
	Audience   string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Verifier implements ports.TokenVerifier using issuer discovery and the
// issuer's JWKS.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier performs issuer discovery and returns a token verifier.
func NewVerifier(ctx context.Context, cfg VerifierConfig) (*Verifier, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	provider, err := gooidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	oidcCfg := &gooidc.Config{ClientID: cfg.Audience}
	if cfg.Audience == "" {
		oidcCfg.SkipClientIDCheck = true
	}

	return &Verifier{verifier: provider.Verifier(oidcCfg)}, nil
}

// Verify checks the token's signature, issuer, expiry, and audience.
func (v *Verifier) Verify(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return errors.New("token is empty")
	}
	if _, err := v.verifier.Verify(ctx, rawToken); err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	return nil
}
