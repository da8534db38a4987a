package core

import (
	"context"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/services"
)

// Service is the only object adapters may call. It holds no state beyond
// references to the two domain services for the process lifetime.
type Service struct {
	accounts *services.AccountService
	records  *services.RecordService
}

func NewService(accounts *services.AccountService, records *services.RecordService) *Service {
	return &Service{accounts: accounts, records: records}
}

// --- account operations ---

func (s *Service) Register(ctx context.Context, username, email, password string) Result {
	acc, err := s.accounts.Register(ctx, username, email, password)
	if err != nil {
		return fail(err)
	}
	return ok("account registered", accountData(acc))
}

func (s *Service) Login(ctx context.Context, username, password string) Result {
	pair, err := s.accounts.Login(ctx, username, password)
	if err != nil {
		return fail(err)
	}
	return ok("login successful", tokenData(pair))
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) Result {
	pair, err := s.accounts.Refresh(ctx, refreshToken)
	if err != nil {
		return fail(err)
	}
	return ok("token refreshed", tokenData(pair))
}

func (s *Service) Logout(ctx context.Context, refreshToken string) Result {
	if err := s.accounts.Logout(ctx, refreshToken); err != nil {
		return fail(err)
	}
	return ok("logged out", nil)
}

func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) Result {
	acc, err := s.accounts.ChangePassword(ctx, username, oldPassword, newPassword)
	if err != nil {
		return fail(err)
	}
	return ok("password changed", accountData(acc))
}

func (s *Service) DeleteAccount(ctx context.Context, id int64) Result {
	acc, err := s.accounts.DeleteAccount(ctx, id)
	if err != nil {
		return fail(err)
	}
	return ok("account deleted", accountData(acc))
}

func (s *Service) GetAccount(ctx context.Context, id int64) Result {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return fail(err)
	}
	return ok("account found", accountData(acc))
}

// --- record operations ---

func (s *Service) CreateRecord(ctx context.Context, ownerID int64, name, email string, age int) Result {
	rec, err := s.records.Create(ctx, ownerID, name, email, age)
	if err != nil {
		return fail(err)
	}
	return ok("record created", recordData(rec))
}

func (s *Service) ListRecords(ctx context.Context, ownerID int64) Result {
	recs, err := s.records.List(ctx, ownerID)
	if err != nil {
		return fail(err)
	}
	return ok("records listed", recordList(recs))
}

func (s *Service) GetRecord(ctx context.Context, id, ownerID int64) Result {
	rec, err := s.records.Get(ctx, id, ownerID)
	if err != nil {
		return fail(err)
	}
	return ok("record found", recordData(rec))
}

func (s *Service) UpdateRecord(ctx context.Context, id, ownerID int64, patch models.RecordPatch) Result {
	rec, err := s.records.Update(ctx, id, ownerID, patch)
	if err != nil {
		return fail(err)
	}
	return ok("record updated", recordData(rec))
}

func (s *Service) DeleteRecord(ctx context.Context, id, ownerID int64) Result {
	rec, err := s.records.Delete(ctx, id, ownerID)
	if err != nil {
		return fail(err)
	}
	return ok("record deleted", recordData(rec))
}

func (s *Service) SearchRecords(ctx context.Context, ownerID int64, substring string) Result {
	recs, err := s.records.SearchByName(ctx, ownerID, substring)
	if err != nil {
		return fail(err)
	}
	return ok("search complete", recordList(recs))
}

func (s *Service) RecordStats(ctx context.Context, ownerID int64) Result {
	stats, err := s.records.Stats(ctx, ownerID)
	if err != nil {
		return fail(err)
	}
	return ok("stats computed", stats)
}
