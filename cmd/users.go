package main

import (
	"context"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/urfave/cli/v3"
)

// UsersList prints every registered account.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(cmd)
	if err != nil {
		return err
	}

	users, err := store.Users().List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		infos := make([]models.UserInfo, len(users))
		for i, user := range users {
			infos[i] = user.Info()
		}
		return r.writeJSON(infos, true)
	}

	for _, user := range users {
		r.writePlain("%s  %s  %s  %s\n", user.ID(), user.Email(), user.Name(), user.Role())
	}
	return nil
}

// UsersCreate registers a new account through the gateway so password
// handling and validation match the signup flow.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	gateway, err := r.gateway(cmd)
	if err != nil {
		return err
	}

	user, err := gateway.Signup(cmd.String("email"), cmd.String("name"), cmd.String("password"))
	if err != nil {
		return err
	}

	return r.writePlain("Created user %s (%s)\n", user.Email(), user.ID())
}
