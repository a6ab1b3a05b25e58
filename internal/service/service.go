package service

import (
	"codevimarsh/internal/repository"
	"codevimarsh/internal/utils"
)

type Services struct {
	User   *UserService
	Tokens *utils.TokenManager
}

func NewServices(repos *repository.Repositories, tokens *utils.TokenManager) *Services {
	return &Services{
		User:   NewUserService(repos.User),
		Tokens: tokens,
	}
}
