package services_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/services"
)

var _ = Describe("PostService", func() {
	var (
		f     *fixture
		alice entities.Principal
		bob   entities.Principal
		admin entities.Principal
	)

	BeforeEach(func() {
		f = newFixture()
		alice = f.user("alice", entities.RoleUser)
		bob = f.user("bob", entities.RoleUser)
		admin = f.user("moderator", entities.RoleAdmin)
	})

	Describe("CreatePost", func() {
		It("grava o post com o autor e registra post_created", func() {
			content := strings.Repeat("a", 150)
			post, err := f.posts.CreatePost(f.ctx, alice, services.CreatePostInput{Content: content, Image: " http://img "})
			Expect(err).NotTo(HaveOccurred())

			Expect(post.ID).NotTo(BeEmpty())
			Expect(post.Author.Username).To(Equal("alice"))
			Expect(post.Image).To(Equal("http://img"))
			Expect(post.Likes).To(BeEmpty())

			activities := f.activitiesOf(alice.UserID)
			Expect(activities).To(HaveLen(1))
			Expect(activities[0].Message).To(Equal("alice made a post"))
			Expect(activities[0].Metadata).To(HaveKeyWithValue(entities.MetaPostContent, strings.Repeat("a", 100)))
		})

		DescribeTable("valida o conteúdo",
			func(content string, expected error) {
				_, err := f.posts.CreatePost(f.ctx, alice, services.CreatePostInput{Content: content})
				Expect(err).To(MatchError(expected))
			},
			Entry("vazio", "", errors.ErrPostContentRequired),
			Entry("só espaços", "   ", errors.ErrPostContentRequired),
			Entry("acima do limite", strings.Repeat("x", entities.MaxPostContentLength+1), errors.ErrPostContentTooLong),
		)
	})

	Describe("ListFeed", func() {
		It("omite autores bloqueados e posts removidos", func() {
			f.post(alice, "from alice")
			fromBob := f.post(bob, "from bob")
			removed := f.post(alice, "removed")

			_, err := f.moderation.DeletePost(f.ctx, admin, removed.ID)
			Expect(err).NotTo(HaveOccurred())

			page, err := f.posts.ListFeed(f.ctx, alice, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
			Expect(page.Items[0].ID).To(Equal(fromBob.ID))

			_, err = f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			page, err = f.posts.ListFeed(f.ctx, alice, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Content).To(Equal("from alice"))
		})

		It("pagina do mais recente para o mais antigo", func() {
			for _, c := range []string{"one", "two", "three"} {
				f.post(alice, c)
			}

			page, err := f.posts.ListFeed(f.ctx, bob, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Page).To(Equal(2))
			Expect(page.Pages).To(Equal(2))
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Content).To(Equal("one"))
		})
	})

	Describe("ListUserPosts e GetPost", func() {
		It("respeitam o bloqueio feito pelo viewer", func() {
			post := f.post(bob, "hello")

			_, err := f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.posts.ListUserPosts(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(errors.ErrPostsBlocked))

			_, err = f.posts.GetPost(f.ctx, alice, post.ID)
			Expect(err).To(MatchError(errors.ErrPostBlocked))

			// bob não bloqueou alice
			got, err := f.posts.GetPost(f.ctx, bob, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Content).To(Equal("hello"))
		})

		It("GetPost distingue inexistente de removido", func() {
			post := f.post(bob, "hello")
			_, err := f.moderation.DeletePost(f.ctx, admin, post.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.posts.GetPost(f.ctx, alice, post.ID)
			Expect(err).To(MatchError(errors.ErrPostDeleted))

			_, err = f.posts.GetPost(f.ctx, alice, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(errors.ErrPostNotFound))
		})
	})

	Describe("UpdatePost", func() {
		It("só o autor altera; conteúdo vazio mantém o atual", func() {
			post := f.post(alice, "original")

			image := "http://new"
			empty := ""
			updated, err := f.posts.UpdatePost(f.ctx, alice, post.ID, services.UpdatePostInput{Content: &empty, Image: &image})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Content).To(Equal("original"))
			Expect(updated.Image).To(Equal("http://new"))

			content := "hijack"
			_, err = f.posts.UpdatePost(f.ctx, bob, post.ID, services.UpdatePostInput{Content: &content})
			Expect(err).To(MatchError(errors.ErrNotPostAuthor))
		})

		It("recusa posts removidos", func() {
			post := f.post(alice, "original")
			_, err := f.moderation.DeletePost(f.ctx, admin, post.ID)
			Expect(err).NotTo(HaveOccurred())

			content := "edit"
			_, err = f.posts.UpdatePost(f.ctx, alice, post.ID, services.UpdatePostInput{Content: &content})
			Expect(err).To(MatchError(errors.ErrCannotUpdateDeleted))
		})
	})

	Describe("DeletePost", func() {
		It("remove o post de fato", func() {
			post := f.post(alice, "bye")
			_, err := f.posts.LikePost(f.ctx, bob, post.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(f.posts.DeletePost(f.ctx, bob, post.ID)).To(MatchError(errors.ErrNotPostAuthor))
			Expect(f.posts.DeletePost(f.ctx, alice, post.ID)).To(Succeed())

			found, err := f.store.Posts.FindByID(f.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("LikePost e UnlikePost", func() {
		var post *entities.Post

		BeforeEach(func() {
			post = f.post(alice, "like me")
		})

		It("mantém likesCount igual ao tamanho de likes", func() {
			result, err := f.posts.LikePost(f.ctx, bob, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.LikesCount).To(Equal(1))

			_, err = f.posts.LikePost(f.ctx, bob, post.ID)
			Expect(err).To(MatchError(errors.ErrAlreadyLiked))

			result, err = f.posts.LikePost(f.ctx, alice, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.LikesCount).To(Equal(2))

			stored, err := f.store.Posts.FindByID(f.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Likes).To(ConsistOf(alice.UserID, bob.UserID))
			Expect(stored.LikesCount).To(Equal(len(stored.Likes)))

			result, err = f.posts.UnlikePost(f.ctx, bob, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.LikesCount).To(Equal(1))

			_, err = f.posts.UnlikePost(f.ctx, bob, post.ID)
			Expect(err).To(MatchError(errors.ErrNotLiked))
		})

		It("registra post_liked com o nome do autor", func() {
			_, err := f.posts.LikePost(f.ctx, bob, post.ID)
			Expect(err).NotTo(HaveOccurred())

			activities := f.activitiesOf(bob.UserID)
			Expect(activities).To(HaveLen(1))
			Expect(activities[0].Message).To(Equal("bob liked alice's post"))
		})

		It("recusa curtir post removido ou de autor bloqueado", func() {
			_, err := f.social.Block(f.ctx, bob, alice.UserID)
			Expect(err).NotTo(HaveOccurred())
			_, err = f.posts.LikePost(f.ctx, bob, post.ID)
			Expect(err).To(MatchError(errors.ErrLikeBlocked))

			_, err = f.moderation.DeletePost(f.ctx, admin, post.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = f.posts.LikePost(f.ctx, alice, post.ID)
			Expect(err).To(MatchError(errors.ErrCannotLikeDeleted))
		})

		It("retorna not found para post inexistente", func() {
			_, err := f.posts.LikePost(f.ctx, bob, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(errors.ErrPostNotFound))
		})
	})
})
