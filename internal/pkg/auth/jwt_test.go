package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

func testUser() *models.User {
	return &models.User{
		ID:      42,
		Email:   "student@hkmu.edu.hk",
		Name:    "Test Student",
		IsAdmin: false,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "coursehub", time.Hour)

	token, expiresIn, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "student@hkmu.edu.hk", claims.Email)
	assert.Equal(t, "Test Student", claims.Name)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "coursehub", claims.Issuer)
}

func TestAdminFlagSurvivesRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "coursehub", time.Hour)
	admin := testUser()
	admin.IsAdmin = true

	token, _, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService("test-secret", "coursehub", -time.Minute)

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("real-secret", "coursehub", time.Hour)
	verifier := NewJWTService("other-secret", "coursehub", time.Hour)

	token, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewJWTService("test-secret", "coursehub", time.Hour)

	_, err := svc.ValidateAndExtractClaims("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "well formed", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing prefix", header: "abc.def.ghi", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
		{name: "prefix only", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
