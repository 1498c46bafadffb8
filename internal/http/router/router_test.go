package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"upvote.app/relay/core/config"
	"upvote.app/relay/internal/http/router"
	"upvote.app/relay/internal/records"
	"upvote.app/relay/internal/service"
	"upvote.app/relay/internal/store"
)

var _ = Describe("SetupRoutes", func() {
	const adminKey = "test-admin-key"

	var engine *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()

		stores := store.NewStores(records.NewMemoryClient(nil))
		services := service.NewServices(stores, config.RoadmapConfig{JoinConcurrency: 2})
		router.SetupRoutes(engine, services, router.RouterConfig{
			AdminAPIKey:     adminKey,
			AllowedOrigins:  []string{"http://localhost:5173"},
			RequestIDHeader: "X-Request-Id",
		})
	})

	call := func(method, path string, body any, admin bool) (int, map[string]any) {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if admin {
			req.Header.Set("X-Admin-API-Key", adminKey)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		var resp map[string]any
		if w.Body.Len() > 0 {
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		}
		return w.Code, resp
	}

	It("serves the health check", func() {
		code, resp := call(http.MethodGet, "/health", nil, false)

		Expect(code).To(Equal(http.StatusOK))
		Expect(resp["status"]).To(Equal("ok"))
	})

	It("runs a post through comments, votes and the roadmap", func() {
		code, post := call(http.MethodPost, "/api/v1/posts", map[string]any{
			"title":       "Dark mode",
			"description": "Please",
			"category":    "ui",
		}, false)
		Expect(code).To(Equal(http.StatusCreated))
		postID := post["id"].(string)
		Expect(post["status"]).To(Equal("under-review"))
		Expect(post["authorName"]).To(Equal("Anonymous"))

		code, _ = call(http.MethodPost, "/api/v1/comments", map[string]any{
			"postId":  postID,
			"content": "+1",
		}, false)
		Expect(code).To(Equal(http.StatusCreated))

		code, voted := call(http.MethodPost, "/api/v1/posts/"+postID+"/vote", nil, false)
		Expect(code).To(Equal(http.StatusOK))
		Expect(voted["voteCount"]).To(BeEquivalentTo(1))
		Expect(voted["commentCount"]).To(BeEquivalentTo(1))

		code, threads := call(http.MethodGet, "/api/v1/posts/"+postID+"/comments", nil, false)
		Expect(code).To(Equal(http.StatusOK))
		Expect(threads["comments"]).To(HaveLen(1))

		code, _ = call(http.MethodPut, "/api/v1/roadmap/posts/"+postID+"/stage", map[string]any{"stage": "planned"}, false)
		Expect(code).To(Equal(http.StatusUnauthorized))

		code, item := call(http.MethodPut, "/api/v1/roadmap/posts/"+postID+"/stage", map[string]any{"stage": "planned"}, true)
		Expect(code).To(Equal(http.StatusOK))
		Expect(item["feedbackPostId"]).To(Equal(postID))
		Expect(item["estimatedDate"]).NotTo(BeNil())

		code, _ = call(http.MethodPut, "/api/v1/roadmap/posts/"+postID+"/stage", map[string]any{"stage": "completed"}, true)
		Expect(code).To(Equal(http.StatusOK))

		code, roadmap := call(http.MethodGet, "/api/v1/roadmap", nil, false)
		Expect(code).To(Equal(http.StatusOK))
		Expect(roadmap["planned"]).To(BeEmpty())
		completed := roadmap["completed"].([]any)
		Expect(completed).To(HaveLen(1))
		Expect(completed[0].(map[string]any)["post"].(map[string]any)["title"]).To(Equal("Dark mode"))
	})

	It("returns 404 for a post that does not exist", func() {
		code, resp := call(http.MethodGet, "/api/v1/posts/404", nil, false)

		Expect(code).To(Equal(http.StatusNotFound))
		Expect(resp["error"]).To(ContainSubstring("404"))
	})

	It("guards changelog writes", func() {
		code, _ := call(http.MethodPost, "/api/v1/changelog", map[string]any{"title": "v1", "category": "release"}, false)
		Expect(code).To(Equal(http.StatusUnauthorized))

		code, entry := call(http.MethodPost, "/api/v1/changelog", map[string]any{"title": "v1", "category": "release"}, true)
		Expect(code).To(Equal(http.StatusCreated))

		code, list := call(http.MethodGet, "/api/v1/changelog", nil, false)
		Expect(code).To(Equal(http.StatusOK))
		Expect(list["entries"]).To(HaveLen(1))
		Expect(list["entries"].([]any)[0].(map[string]any)["id"]).To(Equal(entry["id"]))
	})
})
