package errors

import (
	"errors"
	"net/http"
)

// Kind classifica erros de domínio
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindImmutable    Kind = "immutable"
	KindUnauthorized Kind = "unauthorized"
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeImmutable    = "/problems/immutable"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional.
// Code é o message ID usado pelo i18n (internal/infrastructure/i18n/locales).
type DomainError struct {
	Kind   Kind
	Status int
	Code   string
	Err    error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is compara pelo código para que erros embrulhados com Wrap continuem
// reconhecíveis via errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ProblemType retorna o caminho RFC 7807 associado ao tipo do erro
func (e *DomainError) ProblemType() string {
	switch e.Kind {
	case KindNotFound:
		return ProblemTypeNotFound
	case KindValidation:
		return ProblemTypeValidation
	case KindForbidden:
		return ProblemTypeForbidden
	case KindConflict:
		return ProblemTypeConflict
	case KindImmutable:
		return ProblemTypeImmutable
	case KindUnauthorized:
		return ProblemTypeUnauthorized
	}
	return ProblemTypeBadRequest
}

// Wrap devolve uma cópia do erro com a causa anexada
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Kind: e.Kind, Status: e.Status, Code: e.Code, Err: cause}
}

func newError(kind Kind, status int, code string) *DomainError {
	return &DomainError{Kind: kind, Status: status, Code: code}
}

// AsDomainError extrai um *DomainError da cadeia de erros
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Not found
var (
	ErrUserNotFound = newError(KindNotFound, http.StatusNotFound, "error.user_not_found")
	ErrPostNotFound = newError(KindNotFound, http.StatusNotFound, "error.post_not_found")
	ErrPostDeleted  = newError(KindNotFound, http.StatusNotFound, "error.post_has_been_deleted")
)

// Validation
var (
	ErrInvalidEmail        = newError(KindValidation, http.StatusBadRequest, "error.invalid_email")
	ErrInvalidUsername     = newError(KindValidation, http.StatusBadRequest, "error.invalid_username")
	ErrPostContentRequired = newError(KindValidation, http.StatusBadRequest, "error.post_content_required")
	ErrPostContentTooLong  = newError(KindValidation, http.StatusBadRequest, "error.post_content_too_long")
	ErrInvalidProfile      = newError(KindValidation, http.StatusBadRequest, "error.invalid_profile")
	ErrUserIDRequired      = newError(KindValidation, http.StatusBadRequest, "error.user_id_required")
	ErrSelfFollow          = newError(KindValidation, http.StatusBadRequest, "error.cannot_follow_self")
	ErrSelfBlock           = newError(KindValidation, http.StatusBadRequest, "error.cannot_block_self")
	ErrCannotUpdateDeleted = newError(KindValidation, http.StatusBadRequest, "error.cannot_update_deleted_post")
	ErrCannotLikeDeleted   = newError(KindValidation, http.StatusBadRequest, "error.cannot_like_deleted_post")
	ErrPostAlreadyDeleted  = newError(KindValidation, http.StatusBadRequest, "error.post_already_deleted")
	ErrUserAlreadyDeleted  = newError(KindValidation, http.StatusBadRequest, "error.user_already_deleted")
)

// Conflict: o contrato da API responde os casos "já ..." com 400
var (
	ErrEmailAlreadyExists    = newError(KindConflict, http.StatusBadRequest, "error.email_already_exists")
	ErrUsernameAlreadyExists = newError(KindConflict, http.StatusBadRequest, "error.username_already_exists")
	ErrAlreadyFollowing      = newError(KindConflict, http.StatusBadRequest, "error.already_following")
	ErrNotFollowing          = newError(KindConflict, http.StatusBadRequest, "error.not_following")
	ErrAlreadyBlocked        = newError(KindConflict, http.StatusBadRequest, "error.already_blocked")
	ErrNotBlocked            = newError(KindConflict, http.StatusBadRequest, "error.not_blocked")
	ErrAlreadyLiked          = newError(KindConflict, http.StatusBadRequest, "error.already_liked")
	ErrNotLiked              = newError(KindConflict, http.StatusBadRequest, "error.not_liked")
	ErrUserHasNotLiked       = newError(KindConflict, http.StatusBadRequest, "error.user_has_not_liked")
	ErrAlreadyAdmin          = newError(KindConflict, http.StatusBadRequest, "error.already_admin")
	ErrNotAdmin              = newError(KindConflict, http.StatusBadRequest, "error.not_admin")
)

// Forbidden
var (
	ErrForbidden              = newError(KindForbidden, http.StatusForbidden, "error.forbidden")
	ErrInsufficientRole       = newError(KindForbidden, http.StatusForbidden, "error.insufficient_role")
	ErrAdminCannotDeleteAdmin = newError(KindForbidden, http.StatusForbidden, "error.admin_cannot_delete_admin")
	ErrFollowBlocked          = newError(KindForbidden, http.StatusForbidden, "error.cannot_follow_user")
	ErrProfileBlocked         = newError(KindForbidden, http.StatusForbidden, "error.cannot_view_profile")
	ErrPostBlocked            = newError(KindForbidden, http.StatusForbidden, "error.cannot_view_post")
	ErrLikeBlocked            = newError(KindForbidden, http.StatusForbidden, "error.cannot_like_post")
	ErrPostsBlocked           = newError(KindForbidden, http.StatusForbidden, "error.cannot_view_posts")
	ErrActivitiesBlocked      = newError(KindForbidden, http.StatusForbidden, "error.cannot_view_activities")
	ErrNotPostAuthor          = newError(KindForbidden, http.StatusForbidden, "error.not_post_author")
)

// Immutable: proteção do owner
var (
	ErrOwnerImmutable     = newError(KindImmutable, http.StatusForbidden, "error.cannot_delete_owner")
	ErrOwnerRoleImmutable = newError(KindImmutable, http.StatusBadRequest, "error.cannot_change_owner_role")
)

// Unauthorized
var (
	ErrUnauthorized       = newError(KindUnauthorized, http.StatusUnauthorized, "error.unauthorized")
	ErrMissingToken       = newError(KindUnauthorized, http.StatusUnauthorized, "error.missing_token")
	ErrInvalidToken       = newError(KindUnauthorized, http.StatusUnauthorized, "error.invalid_token")
	ErrInvalidCredentials = newError(KindUnauthorized, http.StatusUnauthorized, "error.invalid_credentials")
	ErrAccountDisabled    = newError(KindUnauthorized, http.StatusUnauthorized, "error.account_disabled")
)
