package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/validate"
)

// Register walks the user through account creation. Password strength is
// advisory: a weak password only prints a warning and registration
// proceeds.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username (3+ characters)", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if !validate.StrongPassword(string(pw)) {
		fmt.Fprintln(a.out, "Warning: weak password (want 8+ chars with upper, lower, digit, and symbol)")
	}

	acc, err := a.client.Register(ctx, username, email, string(pw))
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Registered account %q (id=%d). You can now log in.\n", acc.Username, acc.ID)
	return nil
}

// Login authenticates and stores the session tokens in the API client.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.client.Login(ctx, username, string(pw)); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	a.userName = username
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// ChangePassword verifies the current password server-side and replaces
// it. Every session is invalidated, so the user has to log in again.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPw, err := GetPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := GetPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	if !validate.StrongPassword(string(newPw)) {
		fmt.Fprintln(a.out, "Warning: weak password (want 8+ chars with upper, lower, digit, and symbol)")
	}

	if err := a.client.ChangePassword(ctx, string(oldPw), string(newPw)); err != nil {
		fmt.Fprintln(a.out, "Password change failed:", err)
		return err
	}

	a.userName = ""
	fmt.Fprintln(a.out, "Password changed. Please log in again.")
	return nil
}

// DeleteAccount removes the account and everything it owns after an
// explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Delete this account and ALL its records? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.client.DeleteAccount(ctx); err != nil {
		fmt.Fprintln(a.out, "Account deletion failed:", err)
		return err
	}

	a.userName = ""
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}

// Logout discards the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
