package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	auditModel "hotelbook/internal/domains/audit/model"
	auditRepo "hotelbook/internal/domains/audit/repository"
	bookingModel "hotelbook/internal/domains/booking/model"
	bookingRepo "hotelbook/internal/domains/booking/repository"
	customerModel "hotelbook/internal/domains/customer/model"
	customerRepo "hotelbook/internal/domains/customer/repository"
	paymentModel "hotelbook/internal/domains/payment/model"
	paymentRepo "hotelbook/internal/domains/payment/repository"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/money"
	"hotelbook/shared/timezone"
	"slices"
	"strings"
	"time"
)

var errCheckViolation = errors.New("check constraint violation: check_out must be after check_in")

// Customer Store implementation

type customerTable struct{ s *Store }

func (s *Store) Customers() customerRepo.Customer { return customerTable{s} }

// insert stores a customer. Callers hold s.mu.
func (t customerTable) insert(customer customerModel.Customer) (int64, func(), error) {
	if customer.Email != "" {
		for _, c := range t.s.customers {
			if c.Email == customer.Email {
				return 0, nil, failure.Conflict(fmt.Sprintf("customer %s already exists", customer.Email))
			}
		}
	}

	id := t.s.next(customerModel.TableName)
	customer.ID = id
	undo := putUndo(t.s.customers, id)
	t.s.customers[id] = customer

	return id, undo, nil
}

func (t customerTable) Insert(ctx context.Context, customer customerModel.Customer) (id int64, err error) {
	err = t.s.write(ctx, func() (undo func(), err error) {
		id, undo, err = t.insert(customer)

		return undo, err
	})

	return id, err
}

func (t customerTable) Get(_ context.Context, id int64) (customerModel.Customer, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return t.s.customers[id], nil
}

func (t customerTable) GetByEmail(_ context.Context, email string) (customerModel.Customer, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return t.byEmail(email), nil
}

func (t customerTable) byEmail(email string) customerModel.Customer {
	if email == "" {
		return customerModel.Customer{}
	}

	for _, c := range t.s.customers {
		if c.Email == email {
			return c
		}
	}

	return customerModel.Customer{}
}

func (t customerTable) FindOrCreate(ctx context.Context, customer customerModel.Customer) (id int64, err error) {
	err = t.s.write(ctx, func() (undo func(), err error) {
		if existing := t.byEmail(customer.Email); existing.ID != 0 {
			id = existing.ID

			return nil, nil
		}

		id, undo, err = t.insert(customer)

		return undo, err
	})

	return id, err
}

// Booking Store implementation

type bookingTable struct{ s *Store }

func (s *Store) Bookings() bookingRepo.Booking { return bookingTable{s} }

// joined fills the customer and room columns. Callers hold s.mu.
func (t bookingTable) joined(booking bookingModel.Booking) bookingModel.Booking {
	customer := t.s.customers[booking.CustomerID]
	booking.CustomerName = customer.Name
	booking.CustomerEmail = customer.Email
	booking.RoomNumber = nil

	if booking.RoomID != nil {
		if room, ok := t.s.rooms[*booking.RoomID]; ok {
			number := room.RoomNumber
			booking.RoomNumber = &number
		}
	}

	return booking
}

func (t bookingTable) Insert(ctx context.Context, booking bookingModel.Booking) (id int64, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		if !booking.CheckOut.After(booking.CheckIn) {
			return nil, errCheckViolation
		}

		if _, ok := t.s.customers[booking.CustomerID]; !ok {
			return nil, fmt.Errorf("booking customer %d: %w", booking.CustomerID, errForeignKey)
		}

		if _, ok := t.s.hotels[booking.HotelID]; !ok {
			return nil, fmt.Errorf("booking hotel %d: %w", booking.HotelID, errForeignKey)
		}

		if booking.RoomID != nil {
			if _, ok := t.s.rooms[*booking.RoomID]; !ok {
				return nil, fmt.Errorf("booking room %d: %w", *booking.RoomID, errForeignKey)
			}
		}

		id = t.s.next(bookingModel.TableName)
		booking.ID = id
		booking.CustomerName, booking.CustomerEmail, booking.RoomNumber = "", "", nil
		undo := putUndo(t.s.bookings, id)
		t.s.bookings[id] = booking

		return undo, nil
	})

	return id, err
}

func (t bookingTable) Get(_ context.Context, id int64) (bookingModel.Booking, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	booking, ok := t.s.bookings[id]
	if !ok {
		return bookingModel.Booking{}, nil
	}

	return t.joined(booking), nil
}

func (t bookingTable) GetForUpdate(ctx context.Context, id int64) (bookingModel.Booking, error) {
	if err := t.s.lock(ctx, lockKey(bookingModel.TableName, id)); err != nil {
		return bookingModel.Booking{}, err
	}

	return t.Get(ctx, id)
}

func (t bookingTable) filter(filter bookingModel.Filter) []bookingModel.Booking {
	bookings := []bookingModel.Booking{}

	for _, b := range t.s.bookings {
		b = t.joined(b)

		switch {
		case filter.CustomerID != nil && b.CustomerID != *filter.CustomerID,
			filter.CustomerEmail != nil && b.CustomerEmail != *filter.CustomerEmail,
			filter.HotelID != nil && b.HotelID != *filter.HotelID,
			filter.RoomID != nil && !b.OnRoom(*filter.RoomID),
			filter.Status != nil && b.Status != *filter.Status:
			continue
		}

		bookings = append(bookings, b)
	}

	return bookings
}

func (t bookingTable) GetAll(_ context.Context, filter bookingModel.Filter, params gDto.QueryParams) ([]bookingModel.Booking, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return sortAndPage(t.filter(filter), params, func(b bookingModel.Booking) int64 { return b.ID }, ordering[bookingModel.Booking]{
		bookingModel.FieldCheckIn:   func(a, b bookingModel.Booking) int { return a.CheckIn.Compare(b.CheckIn) },
		bookingModel.FieldCheckOut:  func(a, b bookingModel.Booking) int { return a.CheckOut.Compare(b.CheckOut) },
		bookingModel.FieldStatus:    func(a, b bookingModel.Booking) int { return strings.Compare(string(a.Status), string(b.Status)) },
		constant.DefaultValueSortBy: func(a, b bookingModel.Booking) int { return a.CreatedAt.Compare(b.CreatedAt) },
	}), nil
}

func (t bookingTable) Count(_ context.Context, filter bookingModel.Filter) (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return len(t.filter(filter)), nil
}

func (t bookingTable) HasOverlap(_ context.Context, query bookingModel.OverlapQuery) (bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return t.s.overlaps(query.RoomID, query.CheckIn, query.CheckOut, query.ExcludeID), nil
}

func (t bookingTable) UpdateStatus(ctx context.Context, id int64, status bookingModel.Status, user string) (bool, error) {
	return t.update(ctx, id, user, func(b *bookingModel.Booking) { b.Status = status })
}

func (t bookingTable) AssignRoom(ctx context.Context, id, roomID int64, user string) (bool, error) {
	return t.update(ctx, id, user, func(b *bookingModel.Booking) { b.RoomID = &roomID })
}

func (t bookingTable) update(ctx context.Context, id int64, user string, change func(b *bookingModel.Booking)) (found bool, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		booking, ok := t.s.bookings[id]
		if !ok {
			return nil, nil
		}

		found = true
		undo := putUndo(t.s.bookings, id)
		change(&booking)
		booking.Touch(user, timezone.Now())
		t.s.bookings[id] = booking

		return undo, nil
	})

	return found, err
}

// Payment Store implementation

type paymentTable struct{ s *Store }

func (s *Store) Payments() paymentRepo.Payment { return paymentTable{s} }

func (t paymentTable) Insert(ctx context.Context, payment paymentModel.Payment) (id int64, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		if _, ok := t.s.bookings[payment.BookingID]; !ok {
			return nil, fmt.Errorf("payment booking %d: %w", payment.BookingID, errForeignKey)
		}

		id = t.s.next(paymentModel.TableName)
		payment.ID = id
		undo := putUndo(t.s.payments, id)
		t.s.payments[id] = payment

		return undo, nil
	})

	return id, err
}

func (t paymentTable) GetByBooking(_ context.Context, bookingID int64) ([]paymentModel.Payment, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	payments := []paymentModel.Payment{}
	for _, p := range t.s.payments {
		if p.BookingID == bookingID {
			payments = append(payments, p)
		}
	}

	slices.SortFunc(payments, func(a, b paymentModel.Payment) int { return a.PaidOn.Compare(b.PaidOn) })

	return payments, nil
}

func (t paymentTable) Sum(_ context.Context, query paymentModel.RevenueQuery) (money.Amount, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var total money.Amount

	for _, p := range t.s.payments {
		switch {
		case query.HotelID != nil && t.s.bookings[p.BookingID].HotelID != *query.HotelID,
			query.From != nil && p.PaidOn.Before(*query.From),
			query.To != nil && !p.PaidOn.Before(*query.To):
			continue
		}

		total = total.Add(p.Amount)
	}

	return total, nil
}

func (t paymentTable) RevenueByHotel(_ context.Context) ([]paymentModel.HotelRevenue, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	byHotel := make(map[int64]*paymentModel.HotelRevenue, len(t.s.hotels))
	for id, h := range t.s.hotels {
		byHotel[id] = &paymentModel.HotelRevenue{HotelID: id, HotelName: h.Name}
	}

	for _, b := range t.s.bookings {
		if row, ok := byHotel[b.HotelID]; ok {
			row.Bookings++
		}
	}

	for _, p := range t.s.payments {
		if row, ok := byHotel[t.s.bookings[p.BookingID].HotelID]; ok {
			row.Revenue = row.Revenue.Add(p.Amount)
		}
	}

	res := make([]paymentModel.HotelRevenue, 0, len(byHotel))
	for _, row := range byHotel {
		res = append(res, *row)
	}

	slices.SortFunc(res, func(a, b paymentModel.HotelRevenue) int {
		return cmp.Or(cmp.Compare(b.Revenue, a.Revenue), cmp.Compare(a.HotelID, b.HotelID))
	})

	return res, nil
}

func (t paymentTable) RevenueByMonth(_ context.Context, since time.Time) ([]paymentModel.MonthlyRevenue, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	byMonth := map[time.Time]money.Amount{}

	for _, p := range t.s.payments {
		if p.PaidOn.Before(since) {
			continue
		}

		month := time.Date(p.PaidOn.Year(), p.PaidOn.Month(), 1, 0, 0, 0, 0, p.PaidOn.Location())
		byMonth[month] = byMonth[month].Add(p.Amount)
	}

	res := make([]paymentModel.MonthlyRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		res = append(res, paymentModel.MonthlyRevenue{Month: month, Revenue: revenue})
	}

	slices.SortFunc(res, func(a, b paymentModel.MonthlyRevenue) int { return a.Month.Compare(b.Month) })

	return res, nil
}

// AuditLog Store implementation

type auditTable struct{ s *Store }

func (s *Store) AuditLogs() auditRepo.AuditLog { return auditTable{s} }

func (t auditTable) Insert(ctx context.Context, entry auditModel.AuditLog) (created bool, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		for _, a := range t.s.audits {
			if a.EventID != "" && a.EventID == entry.EventID {
				return nil, nil
			}
		}

		created = true
		entry.ID = t.s.next(auditModel.TableName)
		undo := putUndo(t.s.audits, entry.ID)
		t.s.audits[entry.ID] = entry

		return undo, nil
	})

	return created, err
}

func (t auditTable) filter(filter auditModel.Filter) []auditModel.AuditLog {
	logs := []auditModel.AuditLog{}

	for _, a := range t.s.audits {
		if filter.EventType != nil && a.EventType != *filter.EventType {
			continue
		}

		if filter.BookingID != nil && (a.BookingID == nil || *a.BookingID != *filter.BookingID) {
			continue
		}

		logs = append(logs, a)
	}

	return logs
}

func (t auditTable) GetAll(_ context.Context, filter auditModel.Filter, params gDto.QueryParams) ([]auditModel.AuditLog, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return sortAndPage(t.filter(filter), params, func(a auditModel.AuditLog) int64 { return a.ID }, ordering[auditModel.AuditLog]{
		auditModel.FieldCreatedAt: func(a, b auditModel.AuditLog) int { return a.CreatedAt.Compare(b.CreatedAt) },
		auditModel.FieldEventType: func(a, b auditModel.AuditLog) int { return strings.Compare(a.EventType, b.EventType) },
	}), nil
}

func (t auditTable) Count(_ context.Context, filter auditModel.Filter) (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return len(t.filter(filter)), nil
}
