package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Password    string
	Role        string
	Permissions string
	IsActive    string
	LastLoginAt string
	CreatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Password:    "password_hash",
	Role:        "role",
	Permissions: "permissions",
	IsActive:    "is_active",
	LastLoginAt: "last_login_at",
	CreatedAt:   "created_at",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.Role,
		t.Permissions, t.IsActive, t.LastLoginAt, t.CreatedAt,
	}
}
