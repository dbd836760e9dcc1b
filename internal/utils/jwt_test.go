// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type JWTTestSuite struct {
	suite.Suite
	userID uuid.UUID
}

func (suite *JWTTestSuite) SetupSuite() {
	SetJWTSecret("test-secret")
	suite.userID = uuid.New()
}

func (suite *JWTTestSuite) TestAccessTokenRoundTrip() {
	token, err := GenerateJWT(suite.userID, "customer@example.com", "customer", 24)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)

	claims, err := ValidateJWT(token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID.String(), claims.UserID)
	assert.Equal(suite.T(), "customer@example.com", claims.Email)
	assert.Equal(suite.T(), "customer", claims.Role)
	assert.Equal(suite.T(), "trendora-storefront", claims.Issuer)
}

func (suite *JWTTestSuite) TestExpiredTokenRejected() {
	token, err := GenerateJWT(suite.userID, "customer@example.com", "customer", -1)
	assert.NoError(suite.T(), err)

	_, err = ValidateJWT(token)
	assert.Error(suite.T(), err)
}

func (suite *JWTTestSuite) TestTamperedTokenRejected() {
	token, err := GenerateJWT(suite.userID, "customer@example.com", "customer", 24)
	assert.NoError(suite.T(), err)

	_, err = ValidateJWT(token + "x")
	assert.Error(suite.T(), err)
}

func (suite *JWTTestSuite) TestWrongSecretRejected() {
	token, err := GenerateJWT(suite.userID, "customer@example.com", "customer", 24)
	assert.NoError(suite.T(), err)

	SetJWTSecret("different-secret")
	defer SetJWTSecret("test-secret")

	_, err = ValidateJWT(token)
	assert.Error(suite.T(), err)
}

func (suite *JWTTestSuite) TestRefreshTokenRoundTrip() {
	token, err := GenerateRefreshToken(suite.userID, 168)
	assert.NoError(suite.T(), err)

	subject, err := ValidateRefreshToken(token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID.String(), subject)
}

func TestJWTTestSuite(t *testing.T) {
	suite.Run(t, new(JWTTestSuite))
}
