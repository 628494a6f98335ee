package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	account, err := a.core.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", account.Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	account, err := a.core.Login(ctx, email, password)
	if err != nil {
		a.logger.Debug(ctx, "login failed", "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", account.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.core.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	account, ok := a.core.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", account.Name, account.Email)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	accounts, err := a.core.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No users yet")
		return nil
	}
	for _, acc := range accounts {
		fmt.Fprintf(a.out, "%s <%s>\n", acc.Name, acc.Email)
	}
	return nil
}
