package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poscatalog/catalog-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "catalog-backend",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: "user-1"})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, cfg.Issuer, claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestMintRejectsMissingFields(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	_, err := MintAccessToken(cfg, now, AccessTokenPayload{})
	require.Error(t, err)

	bad := cfg
	bad.Secret = ""
	_, err = MintAccessToken(bad, now, AccessTokenPayload{UserID: "user-1"})
	require.Error(t, err)
}

func TestParseRejectsWrongSecretAndExpired(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: "user-1"})
	require.NoError(t, err)

	other := cfg
	other.Secret = "another-secret"
	_, err = ParseAccessToken(other, signed)
	require.Error(t, err)

	expired, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: "user-1"})
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, expired)
	require.Error(t, err)
}
