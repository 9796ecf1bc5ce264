package entities

import (
	"strings"

	domainerrors "github.com/rafabene/socialnet-backend/internal/domain/errors"
)

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// roleRank define a ordem user < admin < owner
var roleRank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
	RoleOwner: 3,
}

// Action representa uma ação sujeita a controle de papel
type Action string

const (
	// Listar tudo, remover posts e curtidas de terceiros
	ActionModerate Action = "moderate"
	// Desativar a conta de outro usuário
	ActionDeleteUser Action = "delete_user"
	// Promover, rebaixar e listar admins
	ActionManageAdmins Action = "manage_admins"
)

// IsValid verifica se o role é conhecido
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast verifica se r é igual ou superior a other
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other] && r.IsValid()
}

// Title retorna o role com a primeira letra maiúscula ("admin" -> "Admin")
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Authorize concentra todas as regras de papel da moderação.
// target é o papel do usuário afetado; para ações sobre posts use RoleUser.
func Authorize(actor Role, action Action, target Role) error {
	switch action {
	case ActionModerate:
		if !actor.AtLeast(RoleAdmin) {
			return domainerrors.ErrInsufficientRole
		}
		return nil

	case ActionDeleteUser:
		if !actor.AtLeast(RoleAdmin) {
			return domainerrors.ErrInsufficientRole
		}
		if target == RoleOwner {
			return domainerrors.ErrOwnerImmutable
		}
		if actor != RoleOwner && target.AtLeast(RoleAdmin) {
			return domainerrors.ErrAdminCannotDeleteAdmin
		}
		return nil

	case ActionManageAdmins:
		if actor != RoleOwner {
			return domainerrors.ErrInsufficientRole
		}
		if target == RoleOwner {
			return domainerrors.ErrOwnerRoleImmutable
		}
		return nil
	}

	return domainerrors.ErrInsufficientRole
}

// Permits é a forma booleana de Authorize
func Permits(actor Role, action Action, target Role) bool {
	return Authorize(actor, action, target) == nil
}
