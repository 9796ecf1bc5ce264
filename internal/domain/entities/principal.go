package entities

// Principal é o usuário autenticado da requisição.
// É passado explicitamente para cada operação de serviço.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

// Is verifica se o principal corresponde ao userID
func (p Principal) Is(userID string) bool {
	return p.UserID == userID
}
