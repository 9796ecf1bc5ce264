package entities

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// ActivityType identifica o tipo de evento registrado no feed
type ActivityType string

const (
	ActivityPostCreated  ActivityType = "post_created"
	ActivityPostLiked    ActivityType = "post_liked"
	ActivityUserFollowed ActivityType = "user_followed"
	ActivityUserDeleted  ActivityType = "user_deleted"
	ActivityPostDeleted  ActivityType = "post_deleted"
)

// TargetModel discrimina o tipo do alvo de uma atividade
type TargetModel string

const (
	TargetUser TargetModel = "User"
	TargetPost TargetModel = "Post"
)

// Chaves de metadata
const (
	MetaPostContent   = "postContent"
	MetaDeletedBy     = "deletedBy"
	MetaDeletedByRole = "deletedByRole"
)

// postContentPreview é o tamanho máximo do trecho do post guardado em metadata
const postContentPreview = 100

// Activity é um evento imutável do feed de atividades
type Activity struct {
	ID          string
	Type        ActivityType
	ActorID     string
	Actor       UserSummary
	TargetID    string
	TargetModel TargetModel
	Message     string
	Metadata    map[string]any
	CreatedAt   time.Time
}

// IsValid verifica se o tipo é conhecido
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityPostCreated, ActivityPostLiked, ActivityUserFollowed, ActivityUserDeleted, ActivityPostDeleted:
		return true
	}
	return false
}

// ActivityEntry descreve um evento a registrar
type ActivityEntry struct {
	Type        ActivityType
	Actor       UserSummary
	TargetID    string
	TargetModel TargetModel

	PostContent  string
	PostAuthor   string
	FollowedUser string
	DeletedBy    string
	DeletedRole  Role
}

// NewActivity monta a atividade com a mensagem e metadata de cada tipo
func NewActivity(entry ActivityEntry) *Activity {
	metadata := map[string]any{}
	var message string

	switch entry.Type {
	case ActivityPostCreated:
		message = fmt.Sprintf("%s made a post", entry.Actor.Username)
		if entry.PostContent != "" {
			metadata[MetaPostContent] = truncate(entry.PostContent, postContentPreview)
		}
	case ActivityPostLiked:
		message = fmt.Sprintf("%s liked %s's post", entry.Actor.Username, entry.PostAuthor)
	case ActivityUserFollowed:
		message = fmt.Sprintf("%s followed %s", entry.Actor.Username, entry.FollowedUser)
	case ActivityUserDeleted:
		message = fmt.Sprintf("User deleted by '%s'", entry.DeletedRole.Title())
		metadata[MetaDeletedBy] = entry.DeletedBy
		metadata[MetaDeletedByRole] = string(entry.DeletedRole)
	case ActivityPostDeleted:
		message = fmt.Sprintf("Post deleted by '%s'", entry.DeletedRole.Title())
		metadata[MetaDeletedBy] = entry.DeletedBy
		metadata[MetaDeletedByRole] = string(entry.DeletedRole)
	default:
		message = "Activity occurred"
	}

	return &Activity{
		Type:        entry.Type,
		ActorID:     entry.Actor.ID,
		Actor:       entry.Actor,
		TargetID:    entry.TargetID,
		TargetModel: entry.TargetModel,
		Message:     message,
		Metadata:    metadata,
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
