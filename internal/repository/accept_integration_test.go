//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/ports/accepttx"
	"mogilev-express/internal/repository"
	"mogilev-express/internal/service/accept"
	testlog "mogilev-express/internal/testutil"
)

type AcceptRepositorySuite struct {
	suite.Suite
	orders   *repository.OrderRepo
	accounts *repository.AccountRepo
	accepts  *repository.AcceptRepo
}

func (s *AcceptRepositorySuite) SetupTest() {
	ctx := context.Background()
	_, err := tcPool.Exec(ctx, `TRUNCATE orders CASCADE`)
	s.Require().NoError(err)
	_, err = tcPool.Exec(ctx, `TRUNCATE accounts CASCADE`)
	s.Require().NoError(err)

	s.orders = repository.NewOrderRepo(tcPool)
	s.accounts = repository.NewAccountRepo(tcPool)
	s.accepts = repository.NewAcceptRepo(tcPool)
}

func (s *AcceptRepositorySuite) seedCourier(phone, balance string) {
	_, err := s.accounts.CreateIfAbsent(context.Background(), &domain.Account{
		Phone:   phone,
		Role:    domain.RoleCourier,
		Balance: decimal.RequireFromString(balance),
	})
	s.Require().NoError(err)
}

func (s *AcceptRepositorySuite) seedPendingOrder() domain.Order {
	o := newPendingOrder()
	s.Require().NoError(s.orders.Create(context.Background(), &o))
	return o
}

func (s *AcceptRepositorySuite) TestWithTx_RollsBackOnError() {
	ctx := context.Background()
	o := s.seedPendingOrder()
	s.seedCourier("375299998877", "1.00")

	sentinel := errors.New("boom")
	err := s.accepts.WithTx(ctx, func(tx accepttx.Repository) error {
		ok, err := tx.MarkOrderActive(ctx, o.ID, "375299998877")
		s.Require().NoError(err)
		s.Require().True(ok)
		return sentinel
	})
	s.Require().ErrorIs(err, sentinel)

	got, err := s.orders.Get(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderPending, got.Status, "failed tx must leave order pending")
}

func (s *AcceptRepositorySuite) TestDebitBalance_NeverNegative() {
	ctx := context.Background()
	s.seedCourier("375299998877", "0.30")

	err := s.accepts.WithTx(ctx, func(tx accepttx.Repository) error {
		ok, err := tx.DebitBalance(ctx, "375299998877", decimal.RequireFromString("0.44"))
		s.Require().NoError(err)
		s.False(ok, "debit above balance must be refused")
		return nil
	})
	s.Require().NoError(err)

	a, err := s.accounts.Get(ctx, "375299998877")
	s.Require().NoError(err)
	s.True(a.Balance.Equal(decimal.RequireFromString("0.30")))
}

func (s *AcceptRepositorySuite) TestMarkOrderActive_LoserGetsFalse() {
	ctx := context.Background()
	o := s.seedPendingOrder()

	err := s.accepts.WithTx(ctx, func(tx accepttx.Repository) error {
		ok, err := tx.MarkOrderActive(ctx, o.ID, "375299990001")
		s.Require().NoError(err)
		s.True(ok)
		return nil
	})
	s.Require().NoError(err)

	err = s.accepts.WithTx(ctx, func(tx accepttx.Repository) error {
		ok, err := tx.MarkOrderActive(ctx, o.ID, "375299990002")
		s.Require().NoError(err)
		s.False(ok)
		return nil
	})
	s.Require().NoError(err)

	got, err := s.orders.Get(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderActive, got.Status)
	s.Require().NotNil(got.CourierPhone)
	s.Equal("375299990001", *got.CourierPhone)
}

// TestAccept_ConcurrentCouriers drives the whole accept flow against a
// real database: exactly one courier wins and exactly one commission is
// debited, no matter how the transactions interleave.
func (s *AcceptRepositorySuite) TestAccept_ConcurrentCouriers() {
	ctx := context.Background()
	o := s.seedPendingOrder()

	const couriers = 8
	phones := make([]string, couriers)
	for i := range phones {
		phones[i] = fmt.Sprintf("3752999911%02d", i)
		s.seedCourier(phones[i], "1.00")
	}

	svc := accept.NewService(s.accepts, 0, testlog.New().Logger(), nil)

	var wg sync.WaitGroup
	errs := make([]error, couriers)
	for i := range phones {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Accept(ctx, o.ID, phones[i])
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperr.ErrOrderTaken):
			conflicts++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, wins)
	s.Equal(couriers-1, conflicts)

	got, err := s.orders.Get(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderActive, got.Status)
	s.Require().NotNil(got.CourierPhone)

	// only the winner paid
	totalDebited := decimal.Zero
	for _, phone := range phones {
		a, err := s.accounts.Get(ctx, phone)
		s.Require().NoError(err)
		totalDebited = totalDebited.Add(decimal.RequireFromString("1.00").Sub(a.Balance))
	}
	s.True(totalDebited.Equal(o.Commission), "debited %s, want %s", totalDebited, o.Commission)
}

func TestAcceptRepositorySuite(t *testing.T) {
	suite.Run(t, new(AcceptRepositorySuite))
}
