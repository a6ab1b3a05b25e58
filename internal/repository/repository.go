package repository

import "codevimarsh/internal/storage"

type Repositories struct {
	User UserRepository
}

func NewRepositories(db *storage.Database) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
	}
}
