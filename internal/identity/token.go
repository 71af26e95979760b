package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// AuthToken is the credential returned by a successful login.
type AuthToken struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	IDToken      string        `json:"id_token,omitempty"`
	Scope        string        `json:"scope,omitempty"`
	Expiry       time.Time     `json:"expiry,omitempty"`
	Claims       jwt.MapClaims `json:"claims,omitempty"`
}

func newAuthToken(token *oauth2.Token, logger *zap.Logger) *AuthToken {
	out := &AuthToken{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if v, ok := token.Extra("id_token").(string); ok {
		out.IDToken = v
	}
	if v, ok := token.Extra("scope").(string); ok {
		out.Scope = v
	}
	claims, err := ParseClaims(token.AccessToken)
	if err != nil {
		logger.Debug("access token claims unavailable", zap.Error(err))
	}
	out.Claims = claims
	return out
}

// ParseClaims decodes the JWT payload of an access token without verifying
// its signature. The launcher only forwards the token; the game server
// verifies it.
func ParseClaims(accessToken string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Username returns the preferred_username claim, falling back to the subject.
func (t *AuthToken) Username() string {
	if t == nil || t.Claims == nil {
		return ""
	}
	if name, ok := t.Claims["preferred_username"].(string); ok && name != "" {
		return name
	}
	sub, _ := t.Claims.GetSubject()
	return sub
}
