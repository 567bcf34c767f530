package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

type oneUser struct{}

func (oneUser) GetUserByID(id int) (*model.User, error) {
	if id != 7 {
		return nil, errors.New("no such user")
	}
	return &model.User{ID: 7, Email: "a@b.c"}, nil
}

func TestMountGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tagged := func(c *gin.Context) {
		c.Header("X-Group", "public")
		c.Next()
	}

	MountGroup(r, GroupConfig{Prefix: "/api", Middleware: []gin.HandlerFunc{tagged}},
		ModuleFunc(func(c *Controller) {
			c.PUBLIC_GET("/ping", func(*gin.Context) (any, *APIError) { return gin.H{"ok": true}, nil })
		}),
	)
	MountGroup(r, GroupConfig{Prefix: "/api", Auth: true, SecretKey: "k", Users: oneUser{}},
		ModuleFunc(func(c *Controller) {
			c.GET("/whoami", func(_ *gin.Context, u *model.User) (any, *APIError) { return u, nil })
		}),
	)

	do := func(target, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do("/api/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public", w.Header().Get("X-Group"))

	assert.Equal(t, http.StatusUnauthorized, do("/api/whoami", "").Code)

	token, err := middleware.GenerateJWT(7, "k")
	require.NoError(t, err)
	w = do("/api/whoami", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@b.c"`)
	assert.Empty(t, w.Header().Get("X-Group"))

	stranger, err := middleware.GenerateJWT(8, "k")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do("/api/whoami", stranger).Code)
}
