package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register creates an account. It does not sign in.
func (a *App) Register(ctx context.Context, _ []string) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login authenticates and switches the prompt to the user. An unreachable
// server puts the app into offline mode.
func (a *App) Login(ctx context.Context, _ []string) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.userName = userName
	a.setMode(ModeOnline)
	return nil
}

// Logout revokes the session on the server and forgets the user locally.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.client.Logout(ctx)
	a.userName = ""
	return err
}
