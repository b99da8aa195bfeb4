package fakemembershiprepo

import (
	"context"
	"sync"

	"github.com/dliriotech/tms-auth-service/membership"
)

var _ membership.Repo = (*FakeMembershipRepo)(nil)

type FakeMembershipRepo struct {
	pairs []membership.Membership
	lock  sync.RWMutex
}

func NewFakeMembershipRepo() *FakeMembershipRepo {
	return &FakeMembershipRepo{}
}

func (mr *FakeMembershipRepo) Add(userID, companyID int) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	mr.pairs = append(mr.pairs, membership.Membership{UserID: userID, CompanyID: companyID})
}

func (mr *FakeMembershipRepo) Remove(userID, companyID int) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	kept := mr.pairs[:0]
	for _, p := range mr.pairs {
		if p.UserID != userID || p.CompanyID != companyID {
			kept = append(kept, p)
		}
	}
	mr.pairs = kept
}

func (mr *FakeMembershipRepo) ListByUser(_ context.Context, userID int) ([]membership.Membership, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	var result []membership.Membership
	for _, p := range mr.pairs {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (mr *FakeMembershipRepo) ExistsPair(_ context.Context, userID, companyID int) (bool, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	for _, p := range mr.pairs {
		if p.UserID == userID && p.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}
