package domain

type User struct {
	ID         int    `db:"id" json:"id"`
	FullName   string `db:"full_name" json:"full_name"`
	Email      string `db:"email" json:"email"`
	Phone      string `db:"phone" json:"phone,omitempty"`
	Hash       string `db:"password_hash" json:"-"`
	AvatarURL  string `db:"avatar_url" json:"avatar_url,omitempty"`
	Balance    int    `db:"balance" json:"balance"`
	TotalSpent int    `db:"total_spent" json:"total_spent"`
	IsMember   bool   `db:"is_member" json:"is_member"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}
