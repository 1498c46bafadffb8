package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"upvote.app/relay/internal/model"
	"upvote.app/relay/internal/records"
	"upvote.app/relay/internal/service"
	"upvote.app/relay/internal/store"
)

func strPtr(s string) *string { return &s }

var _ = Describe("BuildCommentTree", func() {
	It("attaches replies to their top-level parent", func() {
		tree := service.BuildCommentTree([]model.Comment{
			{ID: 1},
			{ID: 2, ParentID: strPtr("1")},
			{ID: 3},
		})

		Expect(tree).To(HaveLen(2))
		Expect(tree[0].ID).To(Equal(int64(1)))
		Expect(tree[0].Replies).To(HaveLen(1))
		Expect(tree[0].Replies[0].ID).To(Equal(int64(2)))
		Expect(tree[1].ID).To(Equal(int64(3)))
		Expect(tree[1].Replies).NotTo(BeNil())
		Expect(tree[1].Replies).To(BeEmpty())
	})

	It("keeps replies in input order", func() {
		tree := service.BuildCommentTree([]model.Comment{
			{ID: 1},
			{ID: 4, ParentID: strPtr("1")},
			{ID: 2, ParentID: strPtr("1")},
		})

		Expect(tree[0].Replies[0].ID).To(Equal(int64(4)))
		Expect(tree[0].Replies[1].ID).To(Equal(int64(2)))
	})

	It("drops replies to replies", func() {
		tree := service.BuildCommentTree([]model.Comment{
			{ID: 1},
			{ID: 2, ParentID: strPtr("1")},
			{ID: 3, ParentID: strPtr("2")},
		})

		Expect(tree).To(HaveLen(1))
		Expect(tree[0].Replies).To(HaveLen(1))
	})

	It("returns an empty tree for no comments", func() {
		tree := service.BuildCommentTree(nil)
		Expect(tree).NotTo(BeNil())
		Expect(tree).To(BeEmpty())
	})
})

var _ = Describe("CommentService", func() {
	var (
		ctx       context.Context
		mockStore *mockCommentStore
		svc       service.CommentService
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockStore = &mockCommentStore{}
		svc = service.NewCommentService(mockStore, &mockFeedbackStore{
			getByIDFn: func(_ context.Context, _ int64) (*model.FeedbackPost, error) {
				return nil, store.ErrNotFound
			},
		})
	})

	Describe("ListByPost", func() {
		It("returns an empty tree when the backend fails", func() {
			mockStore.listByPostFn = func(_ context.Context, _ string) ([]model.Comment, error) {
				return nil, errors.New("backend down")
			}

			comments := svc.ListByPost(ctx, "17")
			Expect(comments).NotTo(BeNil())
			Expect(comments).To(BeEmpty())
		})

		It("assembles the thread", func() {
			mockStore.listByPostFn = func(_ context.Context, postID string) ([]model.Comment, error) {
				Expect(postID).To(Equal("17"))
				return []model.Comment{{ID: 1, PostID: "17"}, {ID: 2, PostID: "17", ParentID: strPtr("1")}}, nil
			}

			comments := svc.ListByPost(ctx, "17")
			Expect(comments).To(HaveLen(1))
			Expect(comments[0].Replies).To(HaveLen(1))
		})
	})

	Describe("Create", func() {
		It("requires exactly one of post and roadmap item", func() {
			_, err := svc.Create(ctx, model.CreateComment{Content: "hi"})
			Expect(err).To(MatchError(service.ErrInvalidComment))

			_, err = svc.Create(ctx, model.CreateComment{Content: "hi", PostID: "1", RoadmapItemID: strPtr("2")})
			Expect(err).To(MatchError(service.ErrInvalidComment))
			Expect(mockStore.createCalls).To(BeZero())
		})

		It("rejects empty content", func() {
			_, err := svc.Create(ctx, model.CreateComment{Content: "  ", PostID: "1"})
			Expect(err).To(MatchError(service.ErrInvalidComment))
		})

		It("rejects a missing parent", func() {
			mockStore.getByIDFn = func(_ context.Context, _ int64) (*model.Comment, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, model.CreateComment{Content: "hi", PostID: "17", ParentID: strPtr("3")})
			Expect(err).To(MatchError(service.ErrInvalidComment))
		})

		It("rejects a reply to a reply", func() {
			mockStore.getByIDFn = func(_ context.Context, _ int64) (*model.Comment, error) {
				return &model.Comment{ID: 3, PostID: "17", ParentID: strPtr("1")}, nil
			}

			_, err := svc.Create(ctx, model.CreateComment{Content: "hi", PostID: "17", ParentID: strPtr("3")})
			Expect(err).To(MatchError(service.ErrInvalidComment))
		})

		It("rejects a parent from another post", func() {
			mockStore.getByIDFn = func(_ context.Context, _ int64) (*model.Comment, error) {
				return &model.Comment{ID: 3, PostID: "18"}, nil
			}

			_, err := svc.Create(ctx, model.CreateComment{Content: "hi", PostID: "17", ParentID: strPtr("3")})
			Expect(err).To(MatchError(service.ErrInvalidComment))
		})

		It("creates a valid reply even when the comment count cannot be updated", func() {
			mockStore.getByIDFn = func(_ context.Context, _ int64) (*model.Comment, error) {
				return &model.Comment{ID: 3, PostID: "17"}, nil
			}
			mockStore.createFn = func(_ context.Context, in model.CreateComment) (*model.Comment, error) {
				return &model.Comment{ID: 4, PostID: in.PostID, ParentID: in.ParentID, Content: in.Content}, nil
			}

			comment, err := svc.Create(ctx, model.CreateComment{Content: "hi", PostID: "17", ParentID: strPtr("3")})
			Expect(err).NotTo(HaveOccurred())
			Expect(comment.ID).To(Equal(int64(4)))
		})
	})

	Context("backed by the memory client", func() {
		var (
			stores *store.Stores
			post   *model.FeedbackPost
		)

		BeforeEach(func() {
			stores = store.NewStores(records.NewMemoryClient(nil))
			svc = service.NewCommentService(stores.Comments(), stores.Feedback())

			var err error
			post, err = stores.Feedback().Create(ctx, model.CreateFeedbackPost{Title: "Dark mode"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the post's comment count in step", func() {
			postID := "1"
			Expect(post.ID).To(Equal(int64(1)))

			first, err := svc.Create(ctx, model.CreateComment{Content: "one", PostID: postID})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.Create(ctx, model.CreateComment{Content: "two", PostID: postID, ParentID: strPtr("2")})
			Expect(err).NotTo(HaveOccurred())

			got, err := stores.Feedback().GetByID(ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.CommentCount).To(Equal(2))

			Expect(svc.Delete(ctx, first.ID)).To(Succeed())
			got, err = stores.Feedback().GetByID(ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.CommentCount).To(Equal(1))
		})

		It("returns the thread for a post", func() {
			_, err := svc.Create(ctx, model.CreateComment{Content: "one", PostID: "1"})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.Create(ctx, model.CreateComment{Content: "reply", PostID: "1", ParentID: strPtr("2")})
			Expect(err).NotTo(HaveOccurred())

			tree := svc.ListByPost(ctx, "1")
			Expect(tree).To(HaveLen(1))
			Expect(tree[0].Replies).To(HaveLen(1))
			Expect(tree[0].Replies[0].Content).To(Equal("reply"))
		})
	})
})
