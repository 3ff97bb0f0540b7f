package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type RoleResponse struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRoleResponse(r *domain.Role) *RoleResponse {
	return &RoleResponse{
		Id:        r.Id.String(),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// UserResponse никогда не содержит хэш пароля.
type UserResponse struct {
	Id        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	RoleId    string    `json:"role_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		Id:        u.Id.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		RoleId:    u.RoleId.String(),
		Role:      u.RoleName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type LoginResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user"`
}

// mapAll применяет конструктор ответа к каждому элементу. Пустой вход дает пустой слайс.
func mapAll[T any, R any](items []*T, fn func(*T) *R) []*R {
	out := make([]*R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func NewRoleResponses(roles []*domain.Role) []*RoleResponse {
	return mapAll(roles, NewRoleResponse)
}

func NewUserResponses(users []*domain.User) []*UserResponse {
	return mapAll(users, NewUserResponse)
}
