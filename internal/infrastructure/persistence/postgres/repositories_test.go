package postgres_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
	"github.com/rafabene/socialnet-backend/internal/domain/valueobjects"
	"github.com/rafabene/socialnet-backend/internal/testutil"
)

var _ = Describe("UserRepository", func() {
	var store *testutil.Store

	BeforeEach(func() {
		store = newStore()
	})

	It("gera id e timestamps ao criar", func() {
		user := mustUser(store, "alice")
		Expect(user.ID).To(HaveLen(36))
		Expect(user.CreatedAt).NotTo(BeZero())

		found, err := store.Users.FindByEmail(ctx, "alice@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(user.ID))
		Expect(found.Followers).NotTo(BeNil())
	})

	It("traduz violação de unicidade em ErrDuplicate", func() {
		mustUser(store, "alice")

		dup := &entities.User{
			Username:     "alice",
			Email:        valueobjects.MustEmail("other@example.com"),
			PasswordHash: "x",
			Role:         entities.RoleUser,
			IsActive:     true,
		}
		Expect(store.Users.Create(ctx, dup)).To(MatchError(repositories.ErrDuplicate))
	})

	It("retorna nil para ids desconhecidos ou malformados", func() {
		found, err := store.Users.FindByID(ctx, "not-a-uuid")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeNil())

		found, err = store.Users.FindByUsername(ctx, "nobody")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeNil())
	})

	It("Deactivate só afeta contas ativas", func() {
		user := mustUser(store, "alice")

		ok, err := store.Users.Deactivate(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = store.Users.Deactivate(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("List filtra por papel e status", func() {
		mustUser(store, "alice")
		bob := mustUser(store, "bob")
		Expect(store.Users.UpdateRole(ctx, bob.ID, entities.RoleAdmin)).To(Succeed())

		admins, total, err := store.Users.List(ctx, repositories.UserFilters{Roles: []entities.Role{entities.RoleAdmin}})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
		Expect(admins[0].Username).To(Equal("bob"))
	})

	It("List carrega followers e following de cada usuário", func() {
		alice := mustUser(store, "alice")
		bob := mustUser(store, "bob")
		carol := mustUser(store, "carol")
		_, err := store.Graph.AddFollow(ctx, alice.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		_, err = store.Graph.AddFollow(ctx, carol.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())

		users, _, err := store.Users.List(ctx, repositories.UserFilters{})
		Expect(err).NotTo(HaveOccurred())

		byName := map[string]*entities.User{}
		for _, u := range users {
			byName[u.Username] = u
		}
		Expect(byName["bob"].Followers).To(ConsistOf(alice.ID, carol.ID))
		Expect(byName["bob"].Following).To(BeEmpty())
		Expect(byName["alice"].Following).To(ConsistOf(bob.ID))
		Expect(byName["carol"].Followers).NotTo(BeNil())
	})
})

var _ = Describe("SocialGraphRepository", func() {
	var (
		store      *testutil.Store
		alice, bob *entities.User
	)

	BeforeEach(func() {
		store = newStore()
		alice = mustUser(store, "alice")
		bob = mustUser(store, "bob")
	})

	It("AddFollow é idempotente e RemoveFollow informa se removeu", func() {
		added, err := store.Graph.AddFollow(ctx, alice.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())

		added, err = store.Graph.AddFollow(ctx, alice.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeFalse())

		removed, err := store.Graph.RemoveFollow(ctx, alice.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(BeTrue())

		removed, err = store.Graph.RemoveFollow(ctx, alice.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(BeFalse())
	})

	It("RemoveFollowsBetween remove os dois sentidos", func() {
		_, _ = store.Graph.AddFollow(ctx, alice.ID, bob.ID)
		_, _ = store.Graph.AddFollow(ctx, bob.ID, alice.ID)

		Expect(store.Graph.RemoveFollowsBetween(ctx, bob.ID, alice.ID)).To(Succeed())

		a, err := store.Users.FindByID(ctx, alice.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Following).To(BeEmpty())
		Expect(a.Followers).To(BeEmpty())
	})

	It("bloqueios aparecem em BlockedBy e no usuário", func() {
		added, err := store.Graph.AddBlock(ctx, alice.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())

		blocked, err := store.Graph.BlockedBy(ctx, alice.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocked).To(ConsistOf(bob.ID))

		a, err := store.Users.FindByID(ctx, alice.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.HasBlocked(bob.ID)).To(BeTrue())

		removed, err := store.Graph.RemoveBlock(ctx, alice.ID, "bogus")
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(BeFalse())
	})
})

var _ = Describe("PostRepository", func() {
	var (
		store      *testutil.Store
		alice, bob *entities.User
	)

	BeforeEach(func() {
		store = newStore()
		alice = mustUser(store, "alice")
		bob = mustUser(store, "bob")
	})

	It("recalcula likes_count a partir da tabela de curtidas", func() {
		post := mustPost(store, alice, "hello")
		Expect(store.DB.Exec("UPDATE posts SET likes_count = 42 WHERE id = ?", post.ID).Error).To(Succeed())

		_, count, err := store.Posts.AddLike(ctx, post.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))

		_, count, err = store.Posts.RemoveLike(ctx, post.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(BeZero())
	})

	It("mantém likes_count nas curtidas", func() {
		post := mustPost(store, alice, "hello")

		added, count, err := store.Posts.AddLike(ctx, post.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())
		Expect(count).To(Equal(1))

		added, count, err = store.Posts.AddLike(ctx, post.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeFalse())
		Expect(count).To(Equal(1))

		removed, count, err := store.Posts.RemoveLike(ctx, post.ID, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(BeTrue())
		Expect(count).To(Equal(0))

		removed, _, err = store.Posts.RemoveLike(ctx, post.ID, "bogus")
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(BeFalse())
	})

	It("Update grava o soft delete e FindByID ainda encontra o post", func() {
		post := mustPost(store, alice, "hello")
		post.MarkDeleted(bob.ID, time.Now().UTC())
		Expect(store.Posts.Update(ctx, post)).To(Succeed())

		found, err := store.Posts.FindByID(ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.IsDeleted).To(BeTrue())
		Expect(*found.DeletedBy).To(Equal(bob.ID))
		Expect(found.DeletedAt.UnixNano()).To(Equal(post.DeletedAt.UnixNano()))
		Expect(found.Author.Username).To(Equal("alice"))

		_, total, err := store.Posts.List(ctx, repositories.PostFilters{})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(BeZero())

		_, total, err = store.Posts.List(ctx, repositories.PostFilters{IncludeDeleted: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
	})

	It("SoftDelete só marca posts ainda ativos", func() {
		post := mustPost(store, alice, "hello")
		at := time.Now().UTC()

		marked, err := store.Posts.SoftDelete(ctx, post.ID, bob.ID, at)
		Expect(err).NotTo(HaveOccurred())
		Expect(marked).To(BeTrue())

		marked, err = store.Posts.SoftDelete(ctx, post.ID, alice.ID, at.Add(time.Minute))
		Expect(err).NotTo(HaveOccurred())
		Expect(marked).To(BeFalse())

		found, err := store.Posts.FindByID(ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.IsDeleted).To(BeTrue())
		Expect(*found.DeletedBy).To(Equal(bob.ID))
		Expect(found.DeletedAt.UnixNano()).To(Equal(at.UnixNano()))
	})

	It("List filtra por autor e exclui bloqueados", func() {
		mustPost(store, alice, "a1")
		mustPost(store, bob, "b1")

		posts, _, err := store.Posts.List(ctx, repositories.PostFilters{AuthorID: bob.ID, DisablePaginate: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(HaveLen(1))
		Expect(posts[0].Content).To(Equal("b1"))

		posts, _, err = store.Posts.List(ctx, repositories.PostFilters{ExcludeAuthors: []string{alice.ID}})
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(HaveLen(1))
		Expect(posts[0].AuthorID).To(Equal(bob.ID))

		posts, total, err := store.Posts.List(ctx, repositories.PostFilters{AuthorID: "bogus"})
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(BeEmpty())
		Expect(total).To(BeZero())
	})
})

var _ = Describe("ActivityRepository", func() {
	var (
		store *testutil.Store
		alice *entities.User
	)

	BeforeEach(func() {
		store = newStore()
		alice = mustUser(store, "alice")
	})

	It("preserva metadata e carrega o ator", func() {
		activity := entities.NewActivity(entities.ActivityEntry{
			Type:        entities.ActivityPostCreated,
			Actor:       alice.Summary(),
			TargetID:    alice.ID,
			TargetModel: entities.TargetPost,
			PostContent: "hello world",
		})
		Expect(store.Activities.Create(ctx, activity)).To(Succeed())
		Expect(activity.ID).NotTo(BeEmpty())

		list, total, err := store.Activities.List(ctx, repositories.ActivityFilters{ActorID: alice.ID})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
		Expect(list[0].Actor.Username).To(Equal("alice"))
		Expect(list[0].Metadata).To(HaveKeyWithValue(entities.MetaPostContent, "hello world"))
	})
})
