package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/dliriotech/tms-auth-service/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	byID     map[int]*users.User
	idByName map[string]int
	nextID   int
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byID:     make(map[int]*users.User),
		idByName: make(map[string]int),
		nextID:   1,
	}
}

func (ur *FakeUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.idByName[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	u := *ur.byID[id]
	return &u, nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id int) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == 0 {
		user.ID = ur.nextID
		ur.nextID++
	} else if user.ID >= ur.nextID {
		ur.nextID = user.ID + 1
	}
	copied := *user
	ur.byID[copied.ID] = &copied
	ur.idByName[copied.Username] = copied.ID
	return user, nil
}
