package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gitfolio-core/internal/config"
	"gitfolio-core/internal/domain/user"
)

const (
	principalKey = "principal"

	// minimum gap between JWKS reload attempts triggered by unknown key IDs,
	// counted from the start of the previous attempt whether or not it succeeded
	jwksRefreshInterval = time.Minute
)

// JWK represents a JSON Web Key
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSet represents a set of JSON Web Keys
type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// AuthMiddleware verifies Clerk session tokens
type AuthMiddleware struct {
	jwksURL    string
	issuer     string
	httpClient *http.Client
	logger     *zap.Logger
	reloads    singleflight.Group

	mu          sync.RWMutex
	publicKeys  map[string]*rsa.PublicKey
	lastAttempt time.Time
}

// NewAuthMiddleware creates a new authentication middleware and loads the signing keys
func NewAuthMiddleware(ctx context.Context, cfg *config.ClerkConfig, logger *zap.Logger) (*AuthMiddleware, error) {
	am := &AuthMiddleware{
		jwksURL:    cfg.JWKSURL,
		issuer:     cfg.Issuer,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		publicKeys: make(map[string]*rsa.PublicKey),
	}
	if am.logger == nil {
		am.logger = zap.NewNop()
	}

	am.lastAttempt = time.Now()
	if err := am.loadPublicKeys(ctx); err != nil {
		return nil, fmt.Errorf("failed to load public keys: %w", err)
	}

	return am, nil
}

// NewStaticAuthMiddleware verifies tokens against a fixed key set and never fetches JWKS
func NewStaticAuthMiddleware(issuer string, keys map[string]*rsa.PublicKey) *AuthMiddleware {
	return &AuthMiddleware{
		issuer:     issuer,
		logger:     zap.NewNop(),
		publicKeys: keys,
	}
}

// RequireAuth is a Gin middleware that requires a valid session token.
// The verified caller is available through PrincipalFrom.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		principal, err := am.verifyToken(c.Request.Context(), token)
		if err != nil {
			// reason stays server-side
			LoggerFrom(c, am.logger).Debug("Rejected session token", zap.Error(err))
			abortUnauthorized(c)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by RequireAuth, or nil
func PrincipalFrom(c *gin.Context) *user.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*user.Principal)
	return p
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// verifyToken verifies the JWT and builds the caller from its claims
func (am *AuthMiddleware) verifyToken(ctx context.Context, token string) (*user.Principal, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, errors.New("missing key ID in token header")
		}
		return am.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(am.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	id, err := user.ParseUserID(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}

	// row-level policies read the caller from these claims
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("encode claims: %w", err)
	}

	return user.NewPrincipal(id, raw), nil
}

// publicKey returns the key for kid. An unknown kid triggers at most one JWKS
// reload per interval; concurrent callers share the reload in flight.
func (am *AuthMiddleware) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := am.lookup(kid); ok {
		return key, nil
	}
	if am.jwksURL == "" {
		return nil, fmt.Errorf("unknown key ID: %s", kid)
	}

	_, _, _ = am.reloads.Do("jwks", func() (interface{}, error) {
		am.mu.Lock()
		if time.Since(am.lastAttempt) < jwksRefreshInterval {
			am.mu.Unlock()
			return nil, nil
		}
		am.lastAttempt = time.Now()
		am.mu.Unlock()

		if err := am.loadPublicKeys(context.WithoutCancel(ctx)); err != nil {
			am.logger.Warn("JWKS refresh failed", zap.Error(err))
			return nil, err
		}
		return nil, nil
	})

	if key, ok := am.lookup(kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("unknown key ID: %s", kid)
}

func (am *AuthMiddleware) lookup(kid string) (*rsa.PublicKey, bool) {
	am.mu.RLock()
	defer am.mu.RUnlock()
	key, ok := am.publicKeys[kid]
	return key, ok
}

// loadPublicKeys loads public keys from the JWKS endpoint
func (am *AuthMiddleware) loadPublicKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, am.jwksURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build JWKS request: %w", err)
	}

	resp, err := am.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var jwks JWKSet
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, jwk := range jwks.Keys {
		if jwk.Kty != "RSA" {
			continue
		}

		nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
		if err != nil {
			continue
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
		if err != nil {
			continue
		}

		keys[jwk.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}
	}
	if len(keys) == 0 {
		return errors.New("JWKS contains no usable RSA keys")
	}

	am.mu.Lock()
	am.publicKeys = keys
	am.mu.Unlock()

	return nil
}
