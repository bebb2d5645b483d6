package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/http/handler"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

var _ = Describe("NotificationHandler", func() {
	var (
		router        *gin.Engine
		notifications *mockNotificationService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		notifications = &mockNotificationService{}
		h := handler.NewNotificationHandler(notifications)
		router.GET("/notifications", h.List)
		router.POST("/notifications/:id/read", h.MarkRead)
	})

	request := func(method, path string, user bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if user {
			req.Header.Set("X-User-ID", "7")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("List", func() {
		It("lists the acting user's notifications", func() {
			notifications.listFn = func(_ context.Context, userID int64, unreadOnly bool, _ int32) ([]model.Notification, error) {
				Expect(userID).To(Equal(int64(7)))
				Expect(unreadOnly).To(BeTrue())
				return []model.Notification{{ID: 5, RecipientID: userID, Type: model.NotificationIssueAssigned, Title: "Issue assigned to you"}}, nil
			}

			w := request(http.MethodGet, "/notifications?unread=true", true)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string][]map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["notifications"]).To(HaveLen(1))
			Expect(resp["notifications"][0]["type"]).To(Equal("issue_assigned"))
		})

		It("returns 401 without the user header", func() {
			w := request(http.MethodGet, "/notifications", false)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("MarkRead", func() {
		It("answers 404 for someone else's notification", func() {
			notifications.markReadFn = func(_ context.Context, userID, notificationID int64) (*model.Notification, error) {
				Expect(userID).To(Equal(int64(7)))
				Expect(notificationID).To(Equal(int64(33)))
				return nil, store.ErrNotFound
			}

			w := request(http.MethodPost, "/notifications/33/read", true)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("marks the notification read", func() {
			notifications.markReadFn = func(_ context.Context, userID, notificationID int64) (*model.Notification, error) {
				return &model.Notification{ID: notificationID, RecipientID: userID, IsRead: true}, nil
			}

			w := request(http.MethodPost, "/notifications/33/read", true)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["is_read"]).To(Equal(true))
		})
	})
})
