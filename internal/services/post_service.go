package services

import (
	"context"
	"strings"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/errors"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
	"github.com/rafabene/socialnet-backend/internal/domain/repositories"
)

// PostService contém a lógica de negócio de posts e curtidas
type PostService struct {
	postRepo   repositories.PostRepository
	userRepo   repositories.UserRepository
	uow        ports.UnitOfWork
	activities *ActivityService
	logger     ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	activities *ActivityService,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		uow:        uow,
		activities: activities,
		logger:     logger,
	}
}

// CreatePostInput representa os dados para criar um post
type CreatePostInput struct {
	Content string
	Image   string
}

// UpdatePostInput representa os campos editáveis; nil mantém o valor atual
type UpdatePostInput struct {
	Content *string
	Image   *string
}

// LikeResult é o estado das curtidas após like/unlike
type LikeResult struct {
	PostID     string
	LikesCount int
}

// CreatePost cria um post e registra post_created
func (s *PostService) CreatePost(ctx context.Context, author entities.Principal, input CreatePostInput) (*entities.Post, error) {
	if err := entities.ValidatePostContent(input.Content); err != nil {
		return nil, err
	}

	user, err := requireUser(ctx, s.userRepo, author.UserID)
	if err != nil {
		return nil, err
	}

	post := &entities.Post{
		AuthorID: user.ID,
		Author:   user.Summary(),
		Content:  input.Content,
		Image:    strings.TrimSpace(input.Image),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", user.ID)

	s.activities.Log(ctx, entities.ActivityEntry{
		Type:        entities.ActivityPostCreated,
		Actor:       user.Summary(),
		TargetID:    post.ID,
		TargetModel: entities.TargetPost,
		PostContent: post.Content,
	})

	return post, nil
}

// ListFeed lista posts não removidos, sem autores bloqueados pelo viewer
func (s *PostService) ListFeed(ctx context.Context, viewer entities.Principal, page, limit int) (Page[*entities.Post], error) {
	current, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return Page[*entities.Post]{}, err
	}

	posts, total, err := s.postRepo.List(ctx, repositories.PostFilters{
		ExcludeAuthors: current.BlockedUsers,
		Page:           page,
		PageSize:       limit,
	})
	if err != nil {
		return Page[*entities.Post]{}, err
	}
	return newPage(posts, total, page, limit), nil
}

// ListUserPosts lista os posts de um usuário
func (s *PostService) ListUserPosts(ctx context.Context, viewer entities.Principal, userID string) ([]*entities.Post, error) {
	current, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return nil, err
	}

	if current.HasBlocked(userID) {
		return nil, errors.ErrPostsBlocked
	}

	posts, _, err := s.postRepo.List(ctx, repositories.PostFilters{
		AuthorID:        userID,
		DisablePaginate: true,
	})
	return posts, err
}

// GetPost busca um post visível para o viewer
func (s *PostService) GetPost(ctx context.Context, viewer entities.Principal, id string) (*entities.Post, error) {
	post, err := s.requirePost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.IsDeleted {
		return nil, errors.ErrPostDeleted
	}

	current, err := requireUser(ctx, s.userRepo, viewer.UserID)
	if err != nil {
		return nil, err
	}
	if current.HasBlocked(post.AuthorID) {
		return nil, errors.ErrPostBlocked
	}

	return post, nil
}

// UpdatePost altera um post do próprio autor
func (s *PostService) UpdatePost(ctx context.Context, author entities.Principal, id string, input UpdatePostInput) (*entities.Post, error) {
	post, err := s.requirePost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.IsDeleted {
		return nil, errors.ErrCannotUpdateDeleted
	}

	if !post.IsAuthoredBy(author.UserID) {
		return nil, errors.ErrNotPostAuthor
	}

	if input.Content != nil && *input.Content != "" {
		post.Content = *input.Content
	}
	if input.Image != nil {
		post.Image = strings.TrimSpace(*input.Image)
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post updated", "post_id", post.ID)
	return post, nil
}

// DeletePost remove fisicamente um post do próprio autor.
// Diferente da remoção pela moderação, não há soft delete nem atividade.
func (s *PostService) DeletePost(ctx context.Context, author entities.Principal, id string) error {
	post, err := s.requirePost(ctx, id)
	if err != nil {
		return err
	}

	if !post.IsAuthoredBy(author.UserID) {
		return errors.ErrNotPostAuthor
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.postRepo.Delete(txCtx, post.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("post deleted by author", "post_id", post.ID, "author_id", author.UserID)
	return nil
}

// LikePost curte um post e registra post_liked
func (s *PostService) LikePost(ctx context.Context, viewer entities.Principal, id string) (LikeResult, error) {
	var post *entities.Post
	var count int

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		post, err = s.requirePost(txCtx, id)
		if err != nil {
			return err
		}

		if post.IsDeleted {
			return errors.ErrCannotLikeDeleted
		}

		if post.IsLikedBy(viewer.UserID) {
			return errors.ErrAlreadyLiked
		}

		current, err := requireUser(txCtx, s.userRepo, viewer.UserID)
		if err != nil {
			return err
		}
		if current.HasBlocked(post.AuthorID) {
			return errors.ErrLikeBlocked
		}

		added, likes, err := s.postRepo.AddLike(txCtx, post.ID, viewer.UserID)
		if err != nil {
			return err
		}
		if !added {
			return errors.ErrAlreadyLiked
		}
		count = likes
		return nil
	})
	if err != nil {
		return LikeResult{}, err
	}

	s.activities.Log(ctx, entities.ActivityEntry{
		Type:        entities.ActivityPostLiked,
		Actor:       entities.UserSummary{ID: viewer.UserID, Username: viewer.Username},
		TargetID:    post.ID,
		TargetModel: entities.TargetPost,
		PostAuthor:  post.Author.Username,
	})

	return LikeResult{PostID: post.ID, LikesCount: count}, nil
}

// UnlikePost remove a curtida do viewer
func (s *PostService) UnlikePost(ctx context.Context, viewer entities.Principal, id string) (LikeResult, error) {
	return s.removeLike(ctx, id, viewer.UserID, errors.ErrNotLiked)
}

func (s *PostService) removeLike(ctx context.Context, postID, userID string, notLiked error) (LikeResult, error) {
	var count int

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		post, err := s.requirePost(txCtx, postID)
		if err != nil {
			return err
		}

		removed, likes, err := s.postRepo.RemoveLike(txCtx, post.ID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return notLiked
		}
		count = likes
		return nil
	})
	if err != nil {
		return LikeResult{}, err
	}

	return LikeResult{PostID: postID, LikesCount: count}, nil
}

func (s *PostService) requirePost(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}
	return post, nil
}
