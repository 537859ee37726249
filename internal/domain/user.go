package domain

import "time"

// User is an admin-UI account. The content services never inspect users;
// they receive an already-authenticated actor ID from the API layer.
type User struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email       string     `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Name        string     `gorm:"column:name;type:varchar(100)" json:"name"`
	Password    string     `gorm:"column:password;type:varchar(255)" json:"-"`
	Active      bool       `gorm:"column:active" json:"active"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

func (User) TableName() string { return "users" }

// RoleNames returns the names of the user's roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// ToResponse strips credentials for API output
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Active:      u.Active,
		Roles:       u.RoleNames(),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// Role groups permissions
type Role struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(50);uniqueIndex" json:"name"`

	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string { return "roles" }

// Permission is a single grantable capability
type Permission struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"column:code;type:varchar(100);uniqueIndex" json:"code"`
	Description string `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
}

func (Permission) TableName() string { return "permissions" }

// UserResponse is the public view of a user
type UserResponse struct {
	ID          uint64     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Active      bool       `json:"active"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserRequest creates an account
type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"required,max=100"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest updates an account
type UpdateUserRequest struct {
	Name     string   `json:"name" binding:"omitempty,max=100"`
	Password string   `json:"password" binding:"omitempty,min=8"`
	Active   *bool    `json:"active"`
	Roles    []string `json:"roles"`
}
