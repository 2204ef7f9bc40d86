package services

import (
	"errors"

	"technest/internal/domain"
	"technest/internal/repos"
	"technest/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds     = errors.New("invalid email or password")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidInput = errors.New("invalid input")
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	name, ok := validate.Name(in.FullName)
	if !ok {
		return nil, ErrInvalidInput
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, ErrInvalidInput
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return nil, ErrInvalidInput
	}
	if !validate.Password(in.Password) {
		return nil, ErrInvalidInput
	}
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Create(domain.User{FullName: name, Email: email, Phone: phone, Hash: string(hash)})
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(id)
}

func (s *AuthService) Login(email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}
