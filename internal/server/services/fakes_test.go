package services

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/server/blobstore"
	"github.com/dmitrijs2005/gallery/internal/server/models"
)

type fakeUsersRepo struct {
	mu     sync.Mutex
	users  map[string]models.User
	getErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.UserName]; ok {
		return common.ErrorAlreadyExists
	}
	f.users[u.UserName] = *u
	return nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type fakeUploadsRepo struct {
	mu        sync.Mutex
	items     []models.Upload
	appendErr error
	listErr   error
}

func (f *fakeUploadsRepo) Append(_ context.Context, u *models.Upload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.items = append(f.items, *u)
	return nil
}

func (f *fakeUploadsRepo) ListByOwner(_ context.Context, owner string) ([]models.Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var res []models.Upload
	for _, u := range f.items {
		if u.Owner == owner {
			res = append(res, u)
		}
	}
	return res, nil
}

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
	deleted []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBlobs) Put(_ context.Context, name string, body io.ReadSeeker, _ int64, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	if _, ok := f.objects[name]; ok {
		return common.ErrorAlreadyExists
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[name] = data
	f.types[name] = contentType
	return nil
}

func (f *fakeBlobs) Open(_ context.Context, name string) (*blobstore.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &blobstore.Object{
		Body:        io.NopCloser(bytes.NewReader(data)),
		Size:        int64(len(data)),
		ContentType: f.types[name],
	}, nil
}

func (f *fakeBlobs) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, name)
	f.deleted = append(f.deleted, name)
	return nil
}
