package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// GetAccount fetches the account from the v10 endpoint, falling back to the
// legacy one when the former fails with an HTTP error.
func (s *Session) GetAccount(ctx context.Context) (models.Account, error) {
	var a models.Account
	err := s.api.Get(ctx, common.AccountV10URI, nil, &a)
	if isRequestError(err) {
		s.log.Debug(ctx, "v10 account endpoint failed, trying legacy", "error", err)
		a = models.Account{}
		err = s.api.Get(ctx, common.AccountURI, nil, &a)
	}
	if err != nil {
		return models.Account{}, err
	}
	if a.UserID == "" {
		return models.Account{}, fmt.Errorf("%w: account without userId", common.ErrUnexpectedResponse)
	}

	s.account.Store(&a)
	s.log.Debug(ctx, "got account", "user_id", a.UserID, "given_name", a.GivenName)
	return a, nil
}

// Account returns the last fetched account.
func (s *Session) Account() (models.Account, bool) {
	a := s.account.Load()
	if a == nil {
		return models.Account{}, false
	}
	return *a, true
}

func (s *Session) GetBabies(ctx context.Context) ([]models.Baby, error) {
	var babies []models.Baby
	if err := s.api.Get(ctx, common.BabiesURI, nil, &babies); err != nil {
		return nil, err
	}
	return babies, nil
}

// GetBaby returns the account's first baby. Accounts without a baby yield
// nil. The legacy endpoint is used when the v10 list fails.
func (s *Session) GetBaby(ctx context.Context) (*models.Baby, error) {
	babies, err := s.GetBabies(ctx)
	if err == nil {
		if len(babies) == 0 {
			s.log.Debug(ctx, "no babies on account")
			return nil, nil
		}
		return &babies[0], nil
	}
	if !isRequestError(err) {
		return nil, err
	}

	s.log.Debug(ctx, "v10 babies endpoint failed, trying legacy", "error", err)
	var b models.Baby
	if err := s.api.Get(ctx, common.BabyURI, nil, &b); err != nil {
		return nil, err
	}
	if b.ID == "" {
		return nil, nil
	}
	return &b, nil
}

// userID resolves the user id of a new journal entry: the cached account,
// then a fresh account fetch, then the most recent diaper entry of the last
// week.
func (s *Session) userID(ctx context.Context, babyID string) (string, error) {
	if a, ok := s.Account(); ok && a.UserID != "" {
		return a.UserID, nil
	}
	if a, err := s.GetAccount(ctx); err == nil {
		return a.UserID, nil
	} else if !isRequestError(err) && !errors.Is(err, common.ErrUnexpectedResponse) {
		return "", err
	}

	now := s.now()
	entries, err := s.GetDiaperTracking(ctx, babyID, now.Add(-userLookupWindow), now)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.UserID != "" {
			return e.UserID, nil
		}
	}
	return "", fmt.Errorf("%w: could not determine user id, set it explicitly", common.ErrInvalidEntry)
}

func isRequestError(err error) bool {
	var re *common.RequestError
	return errors.As(err, &re)
}
