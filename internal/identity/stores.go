package identity

import (
	"context"

	"skillbridge/internal/remote"
	"skillbridge/internal/storage"
)

// Adapters exposing the concrete identity stores as DupStores. The key
// choice mirrors the uniqueness invariants: username for local accounts,
// email for residents on both sides.

// LocalAccounts scans the local account table keyed by username.
type LocalAccounts struct {
	Repo storage.AccountRepository
}

func (s *LocalAccounts) Name() string { return "local accounts" }

func (s *LocalAccounts) List(ctx context.Context) ([]DupRecord, error) {
	accounts, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]DupRecord, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, DupRecord{ID: a.ID, Key: a.Username})
	}
	return records, nil
}

func (s *LocalAccounts) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

// LocalResidents scans the local resident table keyed by email.
type LocalResidents struct {
	Repo storage.ResidentRepository
}

func (s *LocalResidents) Name() string { return "local residents" }

func (s *LocalResidents) List(ctx context.Context) ([]DupRecord, error) {
	residents, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]DupRecord, 0, len(residents))
	for _, r := range residents {
		records = append(records, DupRecord{ID: r.ID, Key: r.Email})
	}
	return records, nil
}

func (s *LocalResidents) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

// RemoteResidents scans the hosted resident table keyed by email.
type RemoteResidents struct {
	Table *remote.Residents
}

func (s *RemoteResidents) Name() string { return "remote residents" }

func (s *RemoteResidents) List(ctx context.Context) ([]DupRecord, error) {
	rows, err := s.Table.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]DupRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, DupRecord{ID: row.ID, Key: row.Email})
	}
	return records, nil
}

func (s *RemoteResidents) Delete(ctx context.Context, id int64) error {
	return s.Table.Delete(ctx, id)
}
