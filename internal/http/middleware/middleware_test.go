package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"upvote.app/relay/common/logger"
	"upvote.app/relay/internal/http/middleware"
)

var _ = Describe("Middleware", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("RequireAdminAPIKey", func() {
		const key = "test-admin-key"

		BeforeEach(func() {
			router.Use(middleware.RequireAdminAPIKey(key))
			router.GET("/admin", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
		})

		It("accepts the key header", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("X-Admin-API-Key", key)

			Expect(serve(req).Code).To(Equal(http.StatusOK))
		})

		It("accepts a bearer token", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+key)

			Expect(serve(req).Code).To(Equal(http.StatusOK))
		})

		It("returns 401 for a wrong key", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("X-Admin-API-Key", "wrong")
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("invalid or missing API key"))
		})

		It("returns 401 when no key is sent", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)

			Expect(serve(req).Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireAdminAPIKey without a configured key", func() {
		It("returns 503", func() {
			router.Use(middleware.RequireAdminAPIKey(""))
			router.GET("/admin", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("X-Admin-API-Key", "")

			Expect(serve(req).Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("RequestID", func() {
		var seen *string

		BeforeEach(func() {
			seen = nil
			router.Use(middleware.RequestID("X-Request-Id"))
			router.GET("/ping", func(c *gin.Context) {
				seen = logger.GetLogFields(c.Request.Context()).RequestID
				c.Status(http.StatusNoContent)
			})
		})

		It("keeps the caller's id", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("X-Request-Id", "req-123")
			w := serve(req)

			Expect(w.Header().Get("X-Request-Id")).To(Equal("req-123"))
			Expect(seen).NotTo(BeNil())
			Expect(*seen).To(Equal("req-123"))
		})

		It("mints an id when none is sent", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/ping", nil))

			minted := w.Header().Get("X-Request-Id")
			Expect(minted).To(HaveLen(36))
			Expect(seen).NotTo(BeNil())
			Expect(*seen).To(Equal(minted))
		})
	})

	Describe("Recovery", func() {
		It("turns a panic into a 500", func() {
			router.Use(middleware.Recovery())
			router.GET("/boom", func(c *gin.Context) {
				panic("boom")
			})

			w := serve(httptest.NewRequest(http.MethodGet, "/boom", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring("internal server error"))
		})
	})

	Describe("CORS", func() {
		It("allows a configured origin", func() {
			router.Use(middleware.CORS([]string{"http://localhost:5173"}, "X-Request-Id"))
			router.GET("/posts", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
		})

		It("rejects an unknown origin", func() {
			router.Use(middleware.CORS([]string{"http://localhost:5173"}, "X-Request-Id"))
			router.GET("/posts", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			req.Header.Set("Origin", "http://evil.example")
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("Logger", func() {
		var (
			buf      bytes.Buffer
			previous *slog.Logger
		)

		BeforeEach(func() {
			buf.Reset()
			previous = slog.Default()
			slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
			DeferCleanup(func() { slog.SetDefault(previous) })

			router.Use(middleware.Logger())
			router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
			router.GET("/posts/:id", func(c *gin.Context) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			})
		})

		It("logs client errors at warn with the route", func() {
			serve(httptest.NewRequest(http.MethodGet, "/posts/9?sort=votes", nil))

			var entry map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
			Expect(entry).To(HaveKeyWithValue("level", "WARN"))
			Expect(entry).To(HaveKeyWithValue("route", "/posts/:id"))
			Expect(entry).To(HaveKeyWithValue("query", "sort=votes"))
			Expect(entry).To(HaveKeyWithValue("status", BeNumerically("==", 404)))
		})

		It("keeps health checks below info", func() {
			serve(httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(buf.Len()).To(BeZero())
		})
	})
})
