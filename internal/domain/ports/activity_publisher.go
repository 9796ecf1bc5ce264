package ports

import "github.com/rafabene/socialnet-backend/internal/domain/entities"

// ActivityPublisher distribui atividades recém-registradas (ex.: websocket)
type ActivityPublisher interface {
	Publish(activity *entities.Activity)
}

// NopPublisher ignora as publicações
type NopPublisher struct{}

func (NopPublisher) Publish(*entities.Activity) {}
