package services

import (
	"wardrobe/internal/domain"
	"wardrobe/internal/repos"
	"wardrobe/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UserView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	CartID string `json:"cart"`
}

// Create registers a user together with the cart that user will own.
func (s *UserService) Create(in UserInput) (UserView, error) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return UserView{}, validationErr("invalid email")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return UserView{}, validationErr("name must be 1-250 characters")
	}
	if !validate.Password(in.Password) {
		return UserView{}, validationErr("password must be 8-72 characters with upper, lower, digit and symbol")
	}
	if _, err := s.Users.ByEmail(email); err == nil {
		return UserView{}, conflict("Email already registered")
	} else if !repos.IsNotFound(err) {
		return UserView{}, internal("find user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, internal("hash password", err)
	}
	u := domain.User{ID: uuid.NewString(), Email: email, Name: name, Hash: string(hash)}
	cartID := uuid.NewString()
	if err := s.Users.CreateWithCart(u, cartID); err != nil {
		return UserView{}, internal("create user", err)
	}
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, CartID: cartID}, nil
}

// Exists reports whether id names a registered user.
func (s *UserService) Exists(id string) (bool, error) {
	if _, err := s.Users.ByID(id); err != nil {
		if repos.IsNotFound(err) {
			return false, nil
		}
		return false, internal("find user", err)
	}
	return true, nil
}
