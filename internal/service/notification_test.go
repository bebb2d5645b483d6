package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

var _ = Describe("NotificationService", func() {
	var (
		ctx           context.Context
		notifications *fakeNotificationStore
		svc           service.NotificationService
	)

	BeforeEach(func() {
		ctx = context.Background()
		notifications = &fakeNotificationStore{}
		svc = service.NewNotificationService(notifications)
	})

	Describe("List", func() {
		It("defaults and caps the limit", func() {
			var got []int32
			notifications.listFn = func(_ context.Context, _ int64, _ bool, limit int32) ([]model.Notification, error) {
				got = append(got, limit)
				return nil, nil
			}

			_, err := svc.List(ctx, 7, false, 0)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.List(ctx, 7, false, 9999)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal([]int32{50, 200}))
		})
	})

	Describe("MarkRead", func() {
		It("scopes the read to the acting user", func() {
			notifications.markReadFn = func(_ context.Context, id, recipientID int64) (*model.Notification, error) {
				Expect(id).To(Equal(int64(33)))
				Expect(recipientID).To(Equal(int64(7)))
				return &model.Notification{ID: id, RecipientID: recipientID, IsRead: true}, nil
			}

			n, err := svc.MarkRead(ctx, 7, 33)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.IsRead).To(BeTrue())
		})

		It("surfaces not found for someone else's notification", func() {
			notifications.markReadFn = func(_ context.Context, _, _ int64) (*model.Notification, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.MarkRead(ctx, 8, 33)
			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("Notify", func() {
		It("persists the notification", func() {
			var created *model.Notification
			notifications.createFn = func(_ context.Context, n *model.Notification) error {
				created = n
				return nil
			}

			svc.Notify(ctx, 9, model.NotificationIssueAssigned, "Issue assigned to you", "You were assigned \"Checkout timeout\"", map[string]any{"issue_id": int64(1)})

			Expect(created).NotTo(BeNil())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.RecipientID).To(Equal(int64(9)))
			Expect(created.Type).To(Equal(model.NotificationIssueAssigned))
		})

		It("swallows store failures", func() {
			notifications.createFn = func(_ context.Context, _ *model.Notification) error {
				return errors.New("connection reset")
			}
			Expect(func() {
				svc.Notify(ctx, 9, model.NotificationIssueCommented, "New comment", "New comment on \"Checkout timeout\"", nil)
			}).NotTo(Panic())
		})
	})
})
