package identity

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPlayer = &domain.Player{ID: uuid.New(), Username: "runner"}

type stubAuth struct{}

func (stubAuth) Register(_ context.Context, username, _ string) (*domain.Player, error) {
	switch username {
	case "taken":
		return nil, domain.ErrUsernameConflict
	case "x":
		return nil, domain.ErrUsernameTooShort
	case "broken":
		return nil, errors.New("database down")
	}
	return testPlayer, nil
}

func (stubAuth) SignIn(_ context.Context, _, password string) (*domain.Player, string, error) {
	if password != "correct" {
		return nil, "", domain.ErrInvalidCredentials
	}
	return testPlayer, "access-token", nil
}

func (stubAuth) Identify(claims map[string]interface{}) (domain.Identity, error) {
	if claims["kind"] != "access" {
		return domain.Identity{}, errors.New("not an access token")
	}
	return domain.Identity{PlayerID: testPlayer.ID, Username: testPlayer.Username}, nil
}

func post(engine *gin.Engine, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestIdentityServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewIdentityServer(stubAuth{}).RegisterPublic(engine.Group("/api/v1"))

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"register", "/api/v1/auth/register", `{"username":"runner","password":"secret"}`, http.StatusCreated},
		{"register conflict", "/api/v1/auth/register", `{"username":"taken","password":"secret"}`, http.StatusConflict},
		{"register invalid username", "/api/v1/auth/register", `{"username":"x","password":"secret"}`, http.StatusBadRequest},
		{"register failure", "/api/v1/auth/register", `{"username":"broken","password":"secret"}`, http.StatusInternalServerError},
		{"register missing password", "/api/v1/auth/register", `{"username":"runner"}`, http.StatusBadRequest},
		{"login", "/api/v1/auth/login", `{"username":"runner","password":"correct"}`, http.StatusOK},
		{"login wrong password", "/api/v1/auth/login", `{"username":"runner","password":"wrong"}`, http.StatusUnauthorized},
		{"login malformed", "/api/v1/auth/login", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(engine, tt.target, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokenizer := token.NewJwtService("test-secret", "maze-test")

	engine := gin.New()
	engine.GET("/me", Authorize(tokenizer, stubAuth{}), func(c *gin.Context) {
		id, ok := FromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.Username)
	})

	access, err := tokenizer.Generate(map[string]interface{}{"kind": "access"}, time.Minute)
	require.NoError(t, err)
	ticket, err := tokenizer.Generate(map[string]interface{}{"kind": "run"}, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + access, http.StatusOK},
		{"lowercase scheme", "bearer " + access, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"missing scheme", access, http.StatusUnauthorized},
		{"garbage token", "Bearer nonsense", http.StatusUnauthorized},
		{"run ticket", "Bearer " + ticket, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "runner", w.Body.String())
			}
		})
	}
}
