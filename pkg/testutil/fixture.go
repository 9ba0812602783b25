package testutil

import (
	"database/sql"

	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/internal/repository"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

var (
	User1 = entity.User{
		Base:          entity.Base{ID: "user1"},
		Name:          "Agent 3",
		Discriminator: "#0001",
		PlusTier:      sql.NullInt64{Int64: 1, Valid: true},
	}

	User2 = entity.User{
		Base:          entity.Base{ID: "user2"},
		Name:          "Agent 8",
		Discriminator: "#4821",
	}
)

func InsertUsers(ctx xcontext.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}
