package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, signs in and loads the device snapshot.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, "")
}

func (a *App) login(ctx context.Context, userName string) error {
	var err error
	if userName == "" {
		userName, err = getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.Login(ctx, userName, string(password)); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}
	a.userName = userName
	printf(a.out, "Login successful\n")

	if err := a.session.UpdateDeviceInfo(ctx); err != nil {
		a.log.Warn(ctx, "initial device load failed", "error", err)
	}
	return nil
}

// Logout discards tokens and cached snapshots.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.userName = ""
	printf(a.out, "Logged out\n")
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
