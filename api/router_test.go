package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"mazerunner/api/i"
)

type pingController struct{}

func (pingController) Register(route *gin.RouterGroup) {
	route.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
}

func TestRouterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRouter(Config{BaseURL: "/api", Controllers: []i.Controller{pingController{}}}).Handler()

	t.Run("controllers are mounted under the versioned base url", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "pong", w.Body.String())
	})

	t.Run("unversioned paths are not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
