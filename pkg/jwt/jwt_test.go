package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/barstock-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testTenantID = "00000000-0000-0000-0000-000000000002"
	testLocation = "00000000-0000-0000-0000-000000000003"
)

func TestGenerateAndParse_ConAlcance(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testTenantID, testLocation, "barstock-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testTenantID, claims.TenantID)
	assert.Equal(t, testLocation, claims.LocationID)
	assert.Equal(t, "barstock-test", claims.Issuer)
}

func TestGenerateAndParse_SinAlcance(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "", "", "barstock-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, claims.TenantID, "antes de elegir local no hay tenant")
	assert.Empty(t, claims.LocationID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testTenantID, testLocation, "barstock-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testTenantID, testLocation, "barstock-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "", "", "x", 60)
	assert.Error(t, err)
}
