package core

import (
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/services"
)

// AccountData is the outward projection of an account. The password hash
// stays behind the core boundary.
type AccountData struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func accountData(a *models.Account) AccountData {
	return AccountData{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// RecordData is the outward projection of a managed record.
type RecordData struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func recordData(r *models.Record) RecordData {
	return RecordData{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		OwnerID:   r.OwnerID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func recordList(recs []*models.Record) []RecordData {
	out := make([]RecordData, 0, len(recs))
	for _, r := range recs {
		out = append(out, recordData(r))
	}
	return out
}

// TokenData carries the token pair issued on login/refresh.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func tokenData(p *services.TokenPair) TokenData {
	return TokenData{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}
