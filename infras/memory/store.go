// Package memory is an in-process implementation of every repository and of the Transactor.
// Units of work lock rows with a keyed mutex and undo their writes on rollback.
package memory

import (
	"cmp"
	"context"
	"fmt"
	auditModel "hotelbook/internal/domains/audit/model"
	bookingModel "hotelbook/internal/domains/booking/model"
	customerModel "hotelbook/internal/domains/customer/model"
	hotelModel "hotelbook/internal/domains/hotel/model"
	paymentModel "hotelbook/internal/domains/payment/model"
	roomModel "hotelbook/internal/domains/room/model"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
	"slices"
	"sync"
)

type Store struct {
	mu sync.RWMutex

	seq map[string]int64

	hotels    map[int64]hotelModel.Hotel
	classes   map[int64]hotelModel.RoomClass
	rooms     map[int64]roomModel.Room
	customers map[int64]customerModel.Customer
	bookings  map[int64]bookingModel.Booking
	payments  map[int64]paymentModel.Payment
	audits    map[int64]auditModel.AuditLog

	locks keyedMutex
}

func New() *Store {
	return &Store{
		seq:       make(map[string]int64),
		hotels:    make(map[int64]hotelModel.Hotel),
		classes:   make(map[int64]hotelModel.RoomClass),
		rooms:     make(map[int64]roomModel.Room),
		customers: make(map[int64]customerModel.Customer),
		bookings:  make(map[int64]bookingModel.Booking),
		payments:  make(map[int64]paymentModel.Payment),
		audits:    make(map[int64]auditModel.AuditLog),
		locks:     keyedMutex{locks: make(map[string]*sync.Mutex)},
	}
}

// next returns the next id of table. Callers hold s.mu.
func (s *Store) next(table string) int64 {
	s.seq[table]++

	return s.seq[table]
}

// Transactor implementation

type txKey struct{}

type tx struct {
	held map[string]struct{}
	undo []func()
}

func txFrom(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)

	return t, ok && t != nil
}

func (s *Store) Transactor() gRepo.Transactor {
	return s
}

// WithinTx joins the transaction already carried by ctx, if any.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	t := &tx{held: make(map[string]struct{})}

	defer s.release(t)

	defer func() {
		if p := recover(); p != nil {
			s.rollback(t)

			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		s.rollback(t)

		return err
	}

	return nil
}

func (s *Store) rollback(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}

	t.undo = nil
}

func (s *Store) release(t *tx) {
	for key := range t.held {
		s.locks.unlock(key)
	}

	clear(t.held)
}

// lock takes the row lock for key on behalf of the transaction in ctx. Locks are held until
// the transaction ends; taking one twice is a no-op.
func (s *Store) lock(ctx context.Context, key string) error {
	t, ok := txFrom(ctx)
	if !ok {
		return gRepo.ErrNoTransaction
	}

	if _, held := t.held[key]; held {
		return nil
	}

	s.locks.lock(key)
	t.held[key] = struct{}{}

	return nil
}

// write runs a mutation under the store lock and registers the inverse it returns with the
// transaction in ctx. A failed mutation must leave the tables untouched.
func (s *Store) write(ctx context.Context, apply func() (undo func(), err error)) error {
	s.mu.Lock()
	undo, err := apply()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if t, ok := txFrom(ctx); ok && undo != nil {
		t.undo = append(t.undo, undo)
	}

	return nil
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) {
	k.mu.Lock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}

	k.mu.Unlock()

	m.Lock()
}

func (k *keyedMutex) unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()

	m.Unlock()
}

func lockKey(table string, id int64) string {
	return fmt.Sprintf("%s:%d", table, id)
}

// putUndo returns the inverse of storing value under id in table.
func putUndo[T any](table map[int64]T, id int64) func() {
	previous, existed := table[id]

	return func() {
		if existed {
			table[id] = previous
		} else {
			delete(table, id)
		}
	}
}

type ordering[T any] map[string]func(a, b T) int

// sortAndPage orders items by params.SortBy (falling back to the id) and applies the page.
func sortAndPage[T any](items []T, params gDto.QueryParams, id func(T) int64, orders ordering[T]) []T {
	compare := func(a, b T) int { return cmp.Compare(id(a), id(b)) }

	if by, ok := orders[params.SortBy]; ok {
		compare = func(a, b T) int {
			if c := by(a, b); c != 0 {
				return c
			}

			return cmp.Compare(id(a), id(b))
		}
	}

	slices.SortStableFunc(items, compare)

	if params.SortDir == gDto.SortDirDesc {
		slices.Reverse(items)
	}

	if params.Limit <= 0 {
		return items
	}

	start := (max(params.Page, 1) - 1) * params.Limit
	if start >= len(items) {
		return []T{}
	}

	return items[start:min(start+params.Limit, len(items))]
}
