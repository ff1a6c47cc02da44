package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	r.Register(group)

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	// Test the route was registered
	req := httptest.NewRequest("GET", "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("products", "/products")
		assert.Equal(t, "products", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("registers GET route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "items")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("registers POST route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.POST("/trigger", func(c *gin.Context) {
			c.String(http.StatusAccepted, "triggered")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("POST", "/api/v1/test/trigger", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")

		// Add middleware that sets a header
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})

		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("social", "/social")

		users := g.Group("users", "/users")
		users.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "users list")
		})

		posts := g.Group("posts", "/posts")
		posts.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "posts list")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		// Test users route
		req1 := httptest.NewRequest("GET", "/api/v1/social/users", nil)
		w1 := httptest.NewRecorder()
		engine.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, "users list", w1.Body.String())

		// Test posts route
		req2 := httptest.NewRequest("GET", "/api/v1/social/posts", nil)
		w2 := httptest.NewRecorder()
		engine.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, "posts list", w2.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	products := NewDomainGroup("products", "/products")
	products.GET("/top", func(c *gin.Context) {
		c.String(http.StatusOK, "products")
	})

	sellers := NewDomainGroup("sellers", "/sellers")
	sellers.GET("/top", func(c *gin.Context) {
		c.String(http.StatusOK, "sellers")
	})

	r.Register(products).Register(sellers)
	r.Setup()

	// Test products route
	req1 := httptest.NewRequest("GET", "/api/v1/products/top", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "products", w1.Body.String())

	// Test sellers route
	req2 := httptest.NewRequest("GET", "/api/v1/sellers/top", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "sellers", w2.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("test", "/test")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") }).
		GET("/c", func(c *gin.Context) { c.String(http.StatusOK, "c") })

	r.Register(g).Setup()

	// All routes should be registered
	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/test/a"},
		{"POST", "/api/v1/test/b"},
		{"GET", "/api/v1/test/c"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Route %s %s should work", tt.method, tt.path)
	}
}
