package entities

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/rafabene/socialnet-backend/internal/domain/errors"
)

// MaxPostContentLength é o limite de caracteres do conteúdo de um post
const MaxPostContentLength = 1000

// Post representa uma publicação
type Post struct {
	ID         string
	AuthorID   string
	Author     UserSummary
	Content    string
	Image      string
	Likes      []string
	LikesCount int
	IsDeleted  bool
	DeletedBy  *string
	DeletedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAuthoredBy verifica se userID é o autor do post
func (p *Post) IsAuthoredBy(userID string) bool {
	return p.AuthorID == userID
}

// IsLikedBy verifica se userID curtiu o post
func (p *Post) IsLikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// MarkDeleted aplica o soft delete da moderação
func (p *Post) MarkDeleted(by string, at time.Time) {
	p.IsDeleted = true
	p.DeletedBy = &by
	p.DeletedAt = &at
}

// ValidatePostContent valida o conteúdo de um post (obrigatório, até 1000 caracteres)
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return domainerrors.ErrPostContentRequired
	}
	if utf8.RuneCountInString(content) > MaxPostContentLength {
		return domainerrors.ErrPostContentTooLong
	}
	return nil
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	return ValidatePostContent(p.Content)
}
