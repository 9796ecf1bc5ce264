package services_test

import (
	"context"
	stderrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
	"github.com/rafabene/socialnet-backend/internal/services"
)

// failingFollowRemoval falha ao remover follows, depois do bloqueio já inserido
type failingFollowRemoval struct {
	repositories.SocialGraphRepository
	err error
}

func (r failingFollowRemoval) RemoveFollowsBetween(context.Context, string, string) error {
	return r.err
}

var _ = Describe("SocialService", func() {
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

	Describe("Follow", func() {
		It("cria a aresta nos dois lados e registra user_followed", func() {
			target, err := f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(target.Username).To(Equal("bob"))

			Expect(f.reload(alice.UserID).Following).To(ConsistOf(bob.UserID))
			Expect(f.reload(bob.UserID).Followers).To(ConsistOf(alice.UserID))

			activities := f.activitiesOf(alice.UserID)
			Expect(activities).To(HaveLen(1))
			Expect(activities[0].Type).To(Equal(entities.ActivityUserFollowed))
			Expect(activities[0].Message).To(Equal("alice followed bob"))
			Expect(activities[0].TargetID).To(Equal(bob.UserID))

			Expect(f.publisher.Published()).To(HaveLen(1))
		})

		It("recusa seguir duas vezes sem duplicar a aresta", func() {
			_, err := f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(errors.ErrAlreadyFollowing))

			Expect(f.reload(bob.UserID).Followers).To(HaveLen(1))
			Expect(f.activitiesOf(alice.UserID)).To(HaveLen(1))
		})

		It("recusa seguir a si mesmo", func() {
			_, err := f.social.Follow(f.ctx, alice, alice.UserID)
			Expect(err).To(MatchError(errors.ErrSelfFollow))
		})

		It("recusa quando há bloqueio em qualquer sentido", func() {
			_, err := f.social.Block(f.ctx, bob, alice.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(errors.ErrFollowBlocked))

			_, err = f.social.Follow(f.ctx, bob, alice.UserID)
			Expect(err).To(MatchError(errors.ErrFollowBlocked))
		})

		It("trata alvo desativado como inexistente", func() {
			_, err := f.store.Users.Deactivate(f.ctx, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})
	})

	Describe("Unfollow", func() {
		It("remove a aresta sem registrar atividade", func() {
			_, err := f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.social.Unfollow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			Expect(f.reload(alice.UserID).Following).To(BeEmpty())
			Expect(f.reload(bob.UserID).Followers).To(BeEmpty())
			Expect(f.activitiesOf(alice.UserID)).To(HaveLen(1))
		})

		It("recusa quando não segue", func() {
			_, err := f.social.Unfollow(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(errors.ErrNotFollowing))
		})

		It("retorna not found para alvo inexistente", func() {
			_, err := f.social.Unfollow(f.ctx, alice, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})
	})

	Describe("Block", func() {
		It("remove os follows nos dois sentidos", func() {
			_, err := f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())
			_, err = f.social.Follow(f.ctx, bob, alice.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			a := f.reload(alice.UserID)
			b := f.reload(bob.UserID)
			Expect(a.BlockedUsers).To(ConsistOf(bob.UserID))
			Expect(a.Following).To(BeEmpty())
			Expect(a.Followers).To(BeEmpty())
			Expect(b.Following).To(BeEmpty())
			Expect(b.Followers).To(BeEmpty())
			Expect(b.BlockedUsers).To(BeEmpty())
		})

		It("recusa bloquear duas vezes ou a si mesmo", func() {
			_, err := f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(errors.ErrAlreadyBlocked))

			_, err = f.social.Block(f.ctx, alice, alice.UserID)
			Expect(err).To(MatchError(errors.ErrSelfBlock))
		})

		It("não altera nada quando o alvo não existe", func() {
			_, err := f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())
			_, err = f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.social.Unblock(f.ctx, alice, bob.UserID)).To(Succeed())

			_, err = f.social.Block(f.ctx, alice, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(errors.ErrUserNotFound))
			Expect(f.reload(alice.UserID).BlockedUsers).To(BeEmpty())
		})

		It("desfaz o bloqueio quando a remoção dos follows falha", func() {
			_, err := f.social.Follow(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			boom := stderrors.New("graph unavailable")
			social := services.NewSocialService(
				f.store.Users,
				failingFollowRemoval{SocialGraphRepository: f.store.Graph, err: boom},
				f.store.UoW,
				f.activities,
				ports.NopLogger{},
			)

			_, err = social.Block(f.ctx, alice, bob.UserID)
			Expect(err).To(MatchError(boom))

			reloaded := f.reload(alice.UserID)
			Expect(reloaded.BlockedUsers).To(BeEmpty())
			Expect(reloaded.Following).To(ConsistOf(bob.UserID))
		})
	})

	Describe("Unblock", func() {
		It("remove o bloqueio e permite seguir de novo", func() {
			_, err := f.social.Block(f.ctx, alice, bob.UserID)
			Expect(err).NotTo(HaveOccurred())

			Expect(f.social.Unblock(f.ctx, alice, bob.UserID)).To(Succeed())
			Expect(f.reload(alice.UserID).BlockedUsers).To(BeEmpty())

			_, err = f.social.Follow(f.ctx, bob, alice.UserID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("recusa quando não há bloqueio, mesmo com id desconhecido", func() {
			Expect(f.social.Unblock(f.ctx, alice, bob.UserID)).To(MatchError(errors.ErrNotBlocked))
			Expect(f.social.Unblock(f.ctx, alice, "whatever")).To(MatchError(errors.ErrNotBlocked))
		})
	})
})
