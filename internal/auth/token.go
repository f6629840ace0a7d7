package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quiz-arena-service/internal/domain"
)

// Claims identify the account a call is made on behalf of.
type Claims struct {
	Account string `json:"account"`
	jwt.RegisteredClaims
}

// TokenResolver resolves HS256 signed bearer tokens into accounts.
type TokenResolver struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenResolver(secret, issuer string, ttl time.Duration) (*TokenResolver, error) {
	if secret == "" {
		return nil, errors.New("auth secret not configured")
	}
	return &TokenResolver{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Resolve validates credential and returns the account it was issued for.
// Anonymous, expired or badly signed credentials yield domain.ErrUnauthenticated.
func (r *TokenResolver) Resolve(_ context.Context, credential string) (domain.AccountID, error) {
	credential = strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))
	if credential == "" {
		return "", domain.ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(r.now),
	}
	if r.issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.issuer))
	}
	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (any, error) {
		return r.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Account == "" {
		return "", domain.ErrUnauthenticated
	}
	return domain.AccountID(claims.Account), nil
}

// Issue signs a token for account.
func (r *TokenResolver) Issue(account domain.AccountID) (string, error) {
	if account == "" {
		return "", errors.New("account is required")
	}
	now := r.now()
	claims := Claims{
		Account: string(account),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  string(account),
			Issuer:   r.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if r.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(r.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}
