package fakecompanyrepo

import (
	"context"
	"sync"

	"github.com/dliriotech/tms-auth-service/companies"
)

var _ companies.Repo = (*FakeCompanyRepo)(nil)

type FakeCompanyRepo struct {
	byID map[int]*companies.Company
	lock sync.RWMutex
}

func NewFakeCompanyRepo() *FakeCompanyRepo {
	return &FakeCompanyRepo{byID: make(map[int]*companies.Company)}
}

func (cr *FakeCompanyRepo) Upsert(company *companies.Company) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	copied := *company
	cr.byID[copied.ID] = &copied
}

func (cr *FakeCompanyRepo) GetByID(_ context.Context, id int) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	c, ok := cr.byID[id]
	if !ok {
		return nil, companies.ErrNotFound
	}
	copied := *c
	return &copied, nil
}
