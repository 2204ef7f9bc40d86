package repos

import (
	"technest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, full_name, email, phone, password_hash, avatar_url, balance, total_spent, is_member, COALESCE(created_at,'') AS created_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u domain.User) (int, error) {
	res, err := r.DB.Exec(`
	  INSERT INTO users(full_name,email,phone,password_hash) VALUES(?,?,?,?)`,
		u.FullName, u.Email, u.Phone, u.Hash)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (r *UserRepo) Balance(id int) (int, error) {
	var b int
	err := r.DB.Get(&b, `SELECT balance FROM users WHERE id=?`, id)
	return b, err
}

// AddBalance credits amount and returns the new balance.
func (r *UserRepo) AddBalance(id, amount int) (int, error) {
	if _, err := r.DB.Exec(`UPDATE users SET balance = balance + ? WHERE id=?`, amount, id); err != nil {
		return 0, err
	}
	return r.Balance(id)
}

func (r *UserRepo) UpdateProfile(id int, fullName, email, phone, avatarURL string) (bool, error) {
	res, err := r.DB.Exec(`
	  UPDATE users SET full_name=?, email=?, phone=?, avatar_url=? WHERE id=?`,
		fullName, email, phone, avatarURL, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *UserRepo) UpdatePassword(id int, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=? WHERE id=?`, hash, id)
	return err
}
