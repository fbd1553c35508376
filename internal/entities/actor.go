package entities

type ActorRole string

const (
	RoleDispatcher ActorRole = "dispatcher"
	RoleSender     ActorRole = "sender"
	RoleCourier    ActorRole = "courier"
)

func (r ActorRole) String() string {
	return string(r)
}

func (r ActorRole) IsValid() bool {
	return r == RoleDispatcher || r == RoleSender || r == RoleCourier
}

// Actor инициатор операции, приходит из токена.
type Actor struct {
	ID   string
	Role ActorRole
}

func (a Actor) Is(role ActorRole) bool {
	return a.Role == role
}
