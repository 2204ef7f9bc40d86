package services

import (
	"errors"

	"technest/internal/domain"
	"technest/internal/membership"
	"technest/internal/repos"
	"technest/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAmountTooSmall = errors.New("minimum top-up amount is Rp 1.000")
	ErrWrongPassword  = errors.New("current password is incorrect")
)

type AccountService struct {
	Users *repos.UserRepo
	Tiers membership.Calculator
}

func NewAccountService(users *repos.UserRepo) *AccountService {
	return &AccountService{Users: users, Tiers: membership.NewCalculator()}
}

func (s *AccountService) Balance(userID int) (int, error) {
	if _, err := s.Users.ByID(userID); err != nil {
		return 0, ErrNotFound
	}
	return s.Users.Balance(userID)
}

// TopUp credits the balance and returns the new value. Amounts below the
// Rp 1.000 minimum are rejected before touching storage.
func (s *AccountService) TopUp(userID, amount int) (int, error) {
	if !validate.Amount(amount) {
		return 0, ErrAmountTooSmall
	}
	if _, err := s.Users.ByID(userID); err != nil {
		return 0, ErrNotFound
	}
	return s.Users.AddBalance(userID, amount)
}

type ProfileInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AvatarURL       string `json:"avatar_url"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfile saves the profile fields and, when a new password is
// supplied, verifies the current one before rehashing.
func (s *AccountService) UpdateProfile(userID int, in ProfileInput) (*domain.User, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	name, ok := validate.Name(in.FullName)
	if !ok {
		return nil, ErrInvalidInput
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, ErrInvalidInput
	}
	phone := u.Phone
	if in.Phone != "" {
		if phone, ok = validate.Phone(in.Phone); !ok {
			return nil, ErrInvalidInput
		}
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, ErrWrongPassword
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(in.CurrentPassword)) != nil {
			return nil, ErrWrongPassword
		}
		if !validate.Password(in.NewPassword) {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := s.Users.UpdatePassword(userID, string(hash)); err != nil {
			return nil, err
		}
	}

	if _, err := s.Users.UpdateProfile(userID, name, email, phone, in.AvatarURL); err != nil {
		return nil, err
	}
	return s.Users.ByID(userID)
}

// Membership resolves the user's tier status from cumulative spend.
func (s *AccountService) Membership(userID int) (membership.Status, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return membership.Status{}, ErrNotFound
	}
	tier := "Basic"
	if u.IsMember {
		tier = "Premium"
	}
	return s.Tiers.Status(tier, u.TotalSpent), nil
}
