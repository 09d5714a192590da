package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ebogdanov/userstore/internal/auth"
	"github.com/ebogdanov/userstore/internal/models"
)

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("add: need <login> <name> [email [address]]")
	}

	fmt.Print("Password: ")
	password, err := readPassword()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Login:    args[0],
		Name:     args[1],
		Password: hash,
	}
	if len(args) > 2 {
		user.Email = args[2]
	}
	if len(args) > 3 {
		user.Address = args[3]
	}

	if err := a.repo.Add(ctx, user); err != nil {
		return err
	}
	fmt.Println(user)
	return nil
}

func (a *App) cmdList(ctx context.Context) error {
	all, err := a.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		fmt.Println(u)
	}
	return nil
}

func (a *App) cmdGet(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	user, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(user)
	return nil
}

func (a *App) cmdFind(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("find: need <login>")
	}
	user, err := a.repo.GetByLogin(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(user)
	return nil
}

func (a *App) cmdUpdate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("update: need <id> <name> [email [address]]")
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}

	user, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.Name = args[1]
	if len(args) > 2 {
		user.Email = args[2]
	}
	if len(args) > 3 {
		user.Address = args[3]
	}

	if err := a.repo.Update(ctx, user); err != nil {
		return err
	}
	fmt.Println(user)
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return a.repo.Delete(ctx, &models.User{ID: id})
}

func (a *App) cmdSignIn(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("signin: need <login>")
	}

	fmt.Print("Password: ")
	password, err := readPassword()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ok, err := a.auth.SignIn(ctx, args[0], string(password))
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid login or password")
	}
	fmt.Printf("Welcome, %s!\n", a.auth.CurrentUser().Name)
	return nil
}

func (a *App) cmdWhoAmI() error {
	if !a.auth.IsAuthorized() {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Println(a.auth.CurrentUser())
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errors.New("need <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q: %w", args[0], err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("bad id %d: must be positive", id)
	}
	return id, nil
}
