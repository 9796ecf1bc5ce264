package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// staleReads devolve os posts como se ainda não tivessem sido removidos,
// reproduzindo a leitura de uma requisição concorrente
type staleReads struct {
	repositories.PostRepository
}

func (r staleReads) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	post, err := r.PostRepository.FindByID(ctx, id)
	if post != nil {
		post.IsDeleted = false
		post.DeletedBy = nil
		post.DeletedAt = nil
	}
	return post, err
}

var _ = Describe("ModerationService", func() {
	var (
		f      *fixture
		alice  entities.Principal
		bob    entities.Principal
		admin  entities.Principal
		admin2 entities.Principal
		owner  entities.Principal
	)

	BeforeEach(func() {
		f = newFixture()
		alice = f.user("alice", entities.RoleUser)
		bob = f.user("bob", entities.RoleUser)
		admin = f.user("moderator", entities.RoleAdmin)
		admin2 = f.user("moderator2", entities.RoleAdmin)
		owner = f.user("boss", entities.RoleOwner)
	})

	Describe("DeleteUser", func() {
		It("desativa a conta e registra user_deleted em nome do alvo", func() {
			Expect(f.moderation.DeleteUser(f.ctx, admin, alice.UserID)).To(Succeed())
			Expect(f.reload(alice.UserID).IsActive).To(BeFalse())

			activities := f.activitiesOf(alice.UserID)
			Expect(activities).To(HaveLen(1))
			Expect(activities[0].Type).To(Equal(entities.ActivityUserDeleted))
			Expect(activities[0].Message).To(Equal("User deleted by 'Admin'"))
			Expect(activities[0].Metadata).To(HaveKeyWithValue(entities.MetaDeletedBy, admin.UserID))
			Expect(activities[0].Metadata).To(HaveKeyWithValue(entities.MetaDeletedByRole, "admin"))
		})

		It("recusa contas já desativadas", func() {
			Expect(f.moderation.DeleteUser(f.ctx, admin, alice.UserID)).To(Succeed())
			Expect(f.moderation.DeleteUser(f.ctx, admin, alice.UserID)).To(MatchError(errors.ErrUserAlreadyDeleted))
		})

		DescribeTable("aplica a hierarquia de papéis",
			func(actor, target func() entities.Principal, expected error) {
				err := f.moderation.DeleteUser(f.ctx, actor(), target().UserID)
				if expected == nil {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(MatchError(expected))
				}
			},
			Entry("user não modera", func() entities.Principal { return alice }, func() entities.Principal { return bob }, errors.ErrInsufficientRole),
			Entry("admin não remove admin", func() entities.Principal { return admin }, func() entities.Principal { return admin2 }, errors.ErrAdminCannotDeleteAdmin),
			Entry("admin não remove owner", func() entities.Principal { return admin }, func() entities.Principal { return owner }, errors.ErrOwnerImmutable),
			Entry("owner não remove a si mesmo", func() entities.Principal { return owner }, func() entities.Principal { return owner }, errors.ErrOwnerImmutable),
			Entry("owner remove admin", func() entities.Principal { return owner }, func() entities.Principal { return admin }, nil),
		)

		It("retorna not found para usuário inexistente", func() {
			Expect(f.moderation.DeleteUser(f.ctx, admin, "00000000-0000-0000-0000-000000000000")).To(MatchError(errors.ErrUserNotFound))
		})
	})

	Describe("DeletePost", func() {
		It("aplica soft delete e registra post_deleted em nome do autor", func() {
			post := f.post(alice, "bad words")

			deleted, err := f.moderation.DeletePost(f.ctx, admin, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted.IsDeleted).To(BeTrue())
			Expect(*deleted.DeletedBy).To(Equal(admin.UserID))
			Expect(deleted.DeletedAt).NotTo(BeNil())

			stored, err := f.store.Posts.FindByID(f.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsDeleted).To(BeTrue())

			activities := f.activitiesOf(alice.UserID)
			Expect(activities[0].Type).To(Equal(entities.ActivityPostDeleted))
			Expect(activities[0].Message).To(Equal("Post deleted by 'Admin'"))

			_, err = f.moderation.DeletePost(f.ctx, owner, post.ID)
			Expect(err).To(MatchError(errors.ErrPostAlreadyDeleted))
		})

		It("só uma remoção concorrente vence e registra post_deleted", func() {
			post := f.post(alice, "bad words")
			_, err := f.moderation.DeletePost(f.ctx, admin, post.ID)
			Expect(err).NotTo(HaveOccurred())

			racing := services.NewModerationService(
				f.store.Users, staleReads{PostRepository: f.store.Posts}, f.store.UoW, f.activities, ports.NopLogger{},
			)
			_, err = racing.DeletePost(f.ctx, admin2, post.ID)
			Expect(err).To(MatchError(errors.ErrPostAlreadyDeleted))

			deletions := 0
			for _, a := range f.activitiesOf(alice.UserID) {
				if a.Type == entities.ActivityPostDeleted {
					deletions++
				}
			}
			Expect(deletions).To(Equal(1))

			stored, err := f.store.Posts.FindByID(f.ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.DeletedBy).To(Equal(admin.UserID))
		})

		It("usa o papel do moderador na mensagem", func() {
			post := f.post(alice, "bad words")
			_, err := f.moderation.DeletePost(f.ctx, owner, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.activitiesOf(alice.UserID)[0].Message).To(Equal("Post deleted by 'Owner'"))
		})

		It("recusa usuários comuns", func() {
			post := f.post(alice, "fine")
			_, err := f.moderation.DeletePost(f.ctx, bob, post.ID)
			Expect(err).To(MatchError(errors.ErrInsufficientRole))
		})
	})

	Describe("RemoveLike", func() {
		It("remove a curtida de outro usuário", func() {
			post := f.post(alice, "liked")
			_, err := f.posts.LikePost(f.ctx, bob, post.ID)
			Expect(err).NotTo(HaveOccurred())

			result, err := f.moderation.RemoveLike(f.ctx, admin, post.ID, bob.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.LikesCount).To(Equal(0))

			_, err = f.moderation.RemoveLike(f.ctx, admin, post.ID, bob.UserID)
			Expect(err).To(MatchError(errors.ErrUserHasNotLiked))
		})
	})

	Describe("listagens", func() {
		It("incluem usuários desativados e posts removidos", func() {
			Expect(f.moderation.DeleteUser(f.ctx, admin, alice.UserID)).To(Succeed())
			post := f.post(bob, "gone")
			_, err := f.moderation.DeletePost(f.ctx, admin, post.ID)
			Expect(err).NotTo(HaveOccurred())

			users, err := f.moderation.ListAllUsers(f.ctx, admin, 1, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(users.Total).To(Equal(int64(5)))

			posts, err := f.moderation.ListAllPosts(f.ctx, admin, 1, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(posts.Items).To(HaveLen(1))
			Expect(posts.Items[0].IsDeleted).To(BeTrue())

			_, err = f.moderation.ListAllUsers(f.ctx, alice, 1, 50)
			Expect(err).To(MatchError(errors.ErrInsufficientRole))
		})

		It("ListAdmins retorna admins e owner só para o owner", func() {
			admins, err := f.moderation.ListAdmins(f.ctx, owner, 1, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(admins.Total).To(Equal(int64(3)))

			_, err = f.moderation.ListAdmins(f.ctx, admin, 1, 50)
			Expect(err).To(MatchError(errors.ErrInsufficientRole))
		})
	})

	Describe("Promote e Demote", func() {
		It("promove e rebaixa", func() {
			promoted, err := f.moderation.Promote(f.ctx, owner, alice.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(promoted.Role).To(Equal(entities.RoleAdmin))
			Expect(f.reload(alice.UserID).Role).To(Equal(entities.RoleAdmin))

			_, err = f.moderation.Promote(f.ctx, owner, alice.UserID)
			Expect(err).To(MatchError(errors.ErrAlreadyAdmin))

			demoted, err := f.moderation.Demote(f.ctx, owner, alice.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(demoted.Role).To(Equal(entities.RoleUser))

			_, err = f.moderation.Demote(f.ctx, owner, alice.UserID)
			Expect(err).To(MatchError(errors.ErrNotAdmin))
		})

		It("nunca altera o papel do owner", func() {
			_, err := f.moderation.Promote(f.ctx, owner, owner.UserID)
			Expect(err).To(MatchError(errors.ErrOwnerRoleImmutable))

			_, err = f.moderation.Demote(f.ctx, owner, owner.UserID)
			Expect(err).To(MatchError(errors.ErrNotAdmin))

			Expect(f.reload(owner.UserID).Role).To(Equal(entities.RoleOwner))
		})

		It("exige owner e userId", func() {
			_, err := f.moderation.Promote(f.ctx, admin, alice.UserID)
			Expect(err).To(MatchError(errors.ErrInsufficientRole))

			_, err = f.moderation.Demote(f.ctx, admin, admin2.UserID)
			Expect(err).To(MatchError(errors.ErrInsufficientRole))

			_, err = f.moderation.Promote(f.ctx, owner, "  ")
			Expect(err).To(MatchError(errors.ErrUserIDRequired))
		})
	})
})

var _ = Describe("ActivityService", func() {
	var (
		f     *fixture
		alice entities.Principal
		bob   entities.Principal
	)

	BeforeEach(func() {
		f = newFixture()
		alice = f.user("alice", entities.RoleUser)
		bob = f.user("bob", entities.RoleUser)
	})

	It("Wall omite atores bloqueados pelo viewer", func() {
		f.post(alice, "from alice")
		f.post(bob, "from bob")

		wall, err := f.activities.Wall(f.ctx, alice, 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(wall.Total).To(Equal(int64(2)))
		Expect(wall.Items[0].Actor.Username).To(Equal("bob"))

		_, err = f.social.Block(f.ctx, alice, bob.UserID)
		Expect(err).NotTo(HaveOccurred())

		wall, err = f.activities.Wall(f.ctx, alice, 1, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(wall.Items).To(HaveLen(1))
		Expect(wall.Items[0].ActorID).To(Equal(alice.UserID))
	})

	It("UserActivities recusa atores bloqueados", func() {
		_, err := f.social.Block(f.ctx, alice, bob.UserID)
		Expect(err).NotTo(HaveOccurred())

		_, err = f.activities.UserActivities(f.ctx, alice, bob.UserID)
		Expect(err).To(MatchError(errors.ErrActivitiesBlocked))

		blocked, err := f.activities.BlockedUsers(f.ctx, alice)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocked).To(ConsistOf(bob.UserID))
	})

	It("Log publica a atividade gravada", func() {
		activity := f.activities.Log(f.ctx, entities.ActivityEntry{
			Type:         entities.ActivityUserFollowed,
			Actor:        entities.UserSummary{ID: alice.UserID, Username: "alice"},
			TargetID:     bob.UserID,
			TargetModel:  entities.TargetUser,
			FollowedUser: "bob",
		})
		Expect(activity).NotTo(BeNil())
		Expect(activity.ID).NotTo(BeEmpty())

		published := f.publisher.Published()
		Expect(published).To(HaveLen(1))
		Expect(published[0].ID).To(Equal(activity.ID))
	})

	It("Log engole falhas de gravação", func() {
		Expect(f.store.Close()).To(Succeed())

		activity := f.activities.Log(f.ctx, entities.ActivityEntry{
			Type:  entities.ActivityPostCreated,
			Actor: entities.UserSummary{ID: alice.UserID, Username: "alice"},
		})
		Expect(activity).To(BeNil())
		Expect(f.publisher.Published()).To(BeEmpty())
	})
})
