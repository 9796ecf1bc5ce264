//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/valueobjects"
	"github.com/rafabene/socialnet-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/socialnet-backend/internal/services"
)

var _ = Describe("PostgreSQL", Ordered, Label("integration"), func() {
	var (
		db         *gorm.DB
		postSvc    *services.PostService
		social     *services.SocialService
		moderation *services.ModerationService
		author     *entities.User
		likers     []*entities.User
	)

	BeforeAll(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("socialnet"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			tcpostgres.BasicWaitStrategies(),
		)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(testcontainers.TerminateContainer(container)).To(Succeed())
		})

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).NotTo(HaveOccurred())

		db, err = postgres.Open(gormpostgres.Open(dsn), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(postgres.Migrate(db)).To(Succeed())

		userRepo := postgres.NewUserRepository(db)
		graphRepo := postgres.NewSocialGraphRepository(db)
		posts := postgres.NewPostRepository(db)
		uow := postgres.NewUnitOfWork(db)
		activities := services.NewActivityService(postgres.NewActivityRepository(db), userRepo, nil, ports.NopLogger{})

		postSvc = services.NewPostService(posts, userRepo, uow, activities, ports.NopLogger{})
		social = services.NewSocialService(userRepo, graphRepo, uow, activities, ports.NopLogger{})
		moderation = services.NewModerationService(userRepo, posts, uow, activities, ports.NopLogger{})

		create := func(name string) *entities.User {
			u := &entities.User{
				Username:     name,
				Email:        valueobjects.MustEmail(name + "@example.com"),
				PasswordHash: "x",
				Role:         entities.RoleUser,
				IsActive:     true,
			}
			Expect(userRepo.Create(ctx, u)).To(Succeed())
			return u
		}

		author = create("author")
		for _, name := range []string{"liker_a", "liker_b", "liker_c", "liker_d", "liker_e", "liker_f", "liker_g", "liker_h"} {
			likers = append(likers, create(name))
		}
	})

	It("curtidas concorrentes nunca se perdem nem duplicam", func(ctx SpecContext) {
		post, err := postSvc.CreatePost(ctx, author.Principal(), services.CreatePostInput{Content: "race"})
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup
		var succeeded atomic.Int32
		for _, liker := range likers {
			for range 3 {
				wg.Add(1)
				go func(p entities.Principal) {
					defer GinkgoRecover()
					defer wg.Done()
					if _, err := postSvc.LikePost(ctx, p, post.ID); err == nil {
						succeeded.Add(1)
					}
				}(liker.Principal())
			}
		}
		wg.Wait()

		Expect(succeeded.Load()).To(Equal(int32(len(likers))))

		stored, err := postgres.NewPostRepository(db).FindByID(ctx, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Likes).To(HaveLen(len(likers)))
		Expect(stored.LikesCount).To(Equal(len(likers)))
	}, SpecTimeout(time.Minute))

	It("follows concorrentes criam uma única aresta", func(ctx SpecContext) {
		follower := likers[0].Principal()

		var wg sync.WaitGroup
		var succeeded atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				if _, err := social.Follow(ctx, follower, author.ID); err == nil {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()

		Expect(succeeded.Load()).To(Equal(int32(1)))

		reloaded, err := postgres.NewUserRepository(db).FindByID(ctx, author.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.Followers).To(ConsistOf(follower.UserID))
	}, SpecTimeout(time.Minute))

	It("remoções concorrentes da moderação marcam o post uma única vez", func(ctx SpecContext) {
		post, err := postSvc.CreatePost(ctx, author.Principal(), services.CreatePostInput{Content: "spam"})
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup
		var succeeded atomic.Int32
		for range 6 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				admin := entities.Principal{UserID: likers[1].ID, Username: likers[1].Username, Role: entities.RoleAdmin}
				if _, err := moderation.DeletePost(ctx, admin, post.ID); err == nil {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()

		Expect(succeeded.Load()).To(Equal(int32(1)))

		var deletions int64
		Expect(db.Model(&postgres.ActivityModel{}).
			Where("type = ? AND target_id = ?", string(entities.ActivityPostDeleted), post.ID).
			Count(&deletions).Error).To(Succeed())
		Expect(deletions).To(Equal(int64(1)))
	}, SpecTimeout(time.Minute))
})
