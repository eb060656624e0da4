package domain

// UserRole represents the role of a user account
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User represents an account that owns boards and appears as an actor in the event log
type User struct {
	BaseModel
	Username     string   `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_username" json:"username"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string   `gorm:"type:varchar(255)" json:"fullName"`
	Email        string   `gorm:"type:varchar(255)" json:"email"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	AvatarColor  string   `gorm:"type:varchar(20)" json:"avatarColor"`
	IsActive     bool     `gorm:"not null;default:true" json:"isActive"`
	// IsPrimordial marks the seed admin account, which can never be deleted.
	IsPrimordial bool `gorm:"not null;default:false" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
