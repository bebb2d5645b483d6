package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/http/handler"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

var _ = Describe("IssueHandler", func() {
	var (
		router   *gin.Engine
		issues   *mockIssueService
		projects *mockProjectService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		issues = &mockIssueService{}
		projects = &mockProjectService{
			getFn: func(_ context.Context, id int64) (*model.Project, error) {
				return &model.Project{ID: id, Key: "PAY"}, nil
			},
			requireRoleFn: func(_ context.Context, _, _ int64, _ model.MemberRole) error {
				return nil
			},
		}
		h := handler.NewIssueHandler(issues, projects)
		router.POST("/projects/:id/issues", h.Create)
		router.GET("/issues/:id", h.GetByID)
		router.POST("/issues/:id/transition", h.Transition)
	})

	post := func(path, body string, user bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if user {
			req.Header.Set("X-User-ID", "7")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Create", func() {
		const body = `{"issue_type_id":"10","title":"Checkout timeout"}`

		It("creates the issue as the acting user and renders its key", func() {
			issues.createFn = func(_ context.Context, input service.CreateIssueInput) (*model.Issue, error) {
				Expect(input.ReporterID).To(Equal(int64(7)))
				Expect(input.ProjectID).To(Equal(int64(100)))
				return &model.Issue{ID: 1, ProjectID: 100, KeyNumber: 42, Title: input.Title, Priority: model.PriorityP3}, nil
			}

			w := post("/projects/100/issues", body, true)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["key"]).To(Equal("PAY-42"))
		})

		It("returns 401 without the user header", func() {
			w := post("/projects/100/issues", body, false)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 403 for viewers", func() {
			projects.requireRoleFn = func(_ context.Context, _, _ int64, _ model.MemberRole) error {
				return service.ErrForbidden
			}
			w := post("/projects/100/issues", body, true)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 400 on an invalid body", func() {
			w := post("/projects/100/issues", `{"title":""}`, true)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GetByID", func() {
		It("returns 404 for unknown issues", func() {
			issues.getFn = func(_ context.Context, _ int64) (*model.Issue, error) {
				return nil, store.ErrNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/issues/999", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Transition", func() {
		const body = `{"to_status_id":"3"}`

		BeforeEach(func() {
			issues.getFn = func(_ context.Context, id int64) (*model.Issue, error) {
				return &model.Issue{ID: id, ProjectID: 100, StatusID: 2}, nil
			}
		})

		It("moves the issue through the workflow", func() {
			issues.transitionFn = func(_ context.Context, id, toStatusID int64) (*model.Issue, error) {
				Expect(toStatusID).To(Equal(int64(3)))
				return &model.Issue{ID: id, ProjectID: 100, StatusID: toStatusID, KeyNumber: 42}, nil
			}

			w := post("/issues/1/transition", body, true)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status_id"]).To(Equal("3"))
		})

		It("requires the member role on the issue's project", func() {
			projects.requireRoleFn = func(_ context.Context, projectID, userID int64, minRole model.MemberRole) error {
				Expect(projectID).To(Equal(int64(100)))
				Expect(minRole).To(Equal(model.MemberRoleMember))
				return service.ErrForbidden
			}
			w := post("/issues/1/transition", body, true)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
