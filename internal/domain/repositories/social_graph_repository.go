package repositories

import "context"

// SocialGraphRepository mantém as arestas de follow e block.
// Cada operação é atômica: o booleano indica se a aresta mudou de estado,
// o que evita a condição de corrida do ler-modificar-gravar.
type SocialGraphRepository interface {
	AddFollow(ctx context.Context, followerID, followeeID string) (bool, error)
	RemoveFollow(ctx context.Context, followerID, followeeID string) (bool, error)
	// RemoveFollowsBetween remove as arestas nos dois sentidos
	RemoveFollowsBetween(ctx context.Context, a, b string) error
	AddBlock(ctx context.Context, blockerID, blockedID string) (bool, error)
	RemoveBlock(ctx context.Context, blockerID, blockedID string) (bool, error)
	BlockedBy(ctx context.Context, blockerID string) ([]string, error)
}
