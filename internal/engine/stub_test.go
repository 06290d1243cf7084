package engine

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rlfranchise/bcgroups-bot/internal/adapters/ballchasing"
)

// stubService lets each test wire only the calls it expects.
type stubService struct {
	search         func(f ballchasing.SearchFilter) (*ballchasing.ReplayPage, error)
	replaysInGroup func(groupID string) (*ballchasing.ReplayPage, error)
	download       func(id string) ([]byte, error)
	patchReplay    func(id string, fields map[string]string) error
	listGroups     func(parent, creator string) (*ballchasing.GroupPage, error)
	createGroup    func(name, parent string) (*ballchasing.Group, error)
	upload         func(filename string, file io.Reader, groupID, visibility string) (*ballchasing.UploadResult, error)
}

func (s *stubService) SearchReplays(_ context.Context, f ballchasing.SearchFilter) (*ballchasing.ReplayPage, error) {
	if s.search == nil {
		return &ballchasing.ReplayPage{}, nil
	}
	return s.search(f)
}

func (s *stubService) ReplaysInGroup(_ context.Context, groupID string) (*ballchasing.ReplayPage, error) {
	if s.replaysInGroup == nil {
		return &ballchasing.ReplayPage{}, nil
	}
	return s.replaysInGroup(groupID)
}

func (s *stubService) DownloadReplay(_ context.Context, id string) ([]byte, error) {
	if s.download == nil {
		return []byte("replaydata"), nil
	}
	return s.download(id)
}

func (s *stubService) PatchReplay(_ context.Context, id string, fields map[string]string) error {
	if s.patchReplay == nil {
		return nil
	}
	return s.patchReplay(id, fields)
}

func (s *stubService) ListGroups(_ context.Context, parent, creator string) (*ballchasing.GroupPage, error) {
	if s.listGroups == nil {
		return &ballchasing.GroupPage{}, nil
	}
	return s.listGroups(parent, creator)
}

func (s *stubService) CreateGroup(_ context.Context, name, parent, _, _ string) (*ballchasing.Group, error) {
	if s.createGroup == nil {
		return &ballchasing.Group{ID: "g-" + name, Name: name}, nil
	}
	return s.createGroup(name, parent)
}

func (s *stubService) UploadReplay(_ context.Context, filename string, file io.Reader, groupID, visibility string) (*ballchasing.UploadResult, error) {
	if s.upload == nil {
		return &ballchasing.UploadResult{ID: "up-" + filename}, nil
	}
	return s.upload(filename, file, groupID, visibility)
}

func newTestEngine(t *testing.T, svc ReplayService) *Engine {
	t.Helper()
	return New(svc, zerolog.Nop(), Options{IngestDelay: -1})
}
