package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"hotelbook/config"
	kafkaMocks "hotelbook/infras/kafka/mocks"
	"hotelbook/infras/memory"
	metricsMocks "hotelbook/infras/metrics/mocks"
	otelMocks "hotelbook/infras/otel/mocks"
	bookingModel "hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/internal/domains/booking/service"
	customerService "hotelbook/internal/domains/customer/service"
	hotelModel "hotelbook/internal/domains/hotel/model"
	paymentMocks "hotelbook/internal/domains/payment/mocks"
	paymentModel "hotelbook/internal/domains/payment/model"
	paymentRepo "hotelbook/internal/domains/payment/repository"
	paymentService "hotelbook/internal/domains/payment/service"
	roomModel "hotelbook/internal/domains/room/model"
	"hotelbook/permissions"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/money"
	"hotelbook/shared/statuscode"
)

const (
	stayIn  = "2025-03-10"
	stayOut = "2025-03-12"
)

type engineFixture struct {
	store    *memory.Store
	engine   service.Engine
	ledger   paymentService.Ledger
	kafka    *kafkaMocks.MockClient
	redis    *miniredis.Miniredis
	cfg      *config.Config
	hotelID  int64
	classID  int64
	roomID   int64
	suiteID  int64
	repairID int64
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()

	return newEngineWithPayments(t, nil)
}

// newEngineWithPayments swaps the payment table for the repository built by payments.
func newEngineWithPayments(t *testing.T, payments func(ctrl *gomock.Controller) paymentRepo.Payment) *engineFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ot := otelMocks.NewOtel()
	redisCache := cache.NewRedisCache(client, ot, metricsMocks.NewMetrics())

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.App.Booking.DefaultPaymentMethod = string(paymentModel.MethodCash)
	cfg.Kafka.Topic.BookingEvents = "booking.events"

	f := &engineFixture{store: memory.New(), kafka: kafkaMocks.NewMockClient(ctrl), redis: mr, cfg: cfg}

	var err error

	f.hotelID, err = f.store.Hotels().Insert(ctx, hotelModel.Hotel{Name: "H1", Type: "city"})
	require.NoError(t, err)

	f.classID, err = f.store.RoomClasses().Insert(ctx, hotelModel.RoomClass{HotelID: f.hotelID, Name: "Standard", NightlyRate: money.FromMajor(2500), RoomCount: 10})
	require.NoError(t, err)

	f.roomID = f.room(t, "101", roomModel.StatusAvailable)
	f.suiteID = f.room(t, "102", roomModel.StatusAvailable)
	f.repairID = f.room(t, "103", roomModel.StatusMaintenance)

	ledgerRepo := f.store.Payments()
	if payments != nil {
		ledgerRepo = payments(ctrl)
	}

	f.ledger = paymentService.New(ledgerRepo, f.store.Bookings(), cfg, redisCache, ot)
	f.engine = service.New(
		f.store.Bookings(),
		f.store.Rooms(),
		f.store.Hotels(),
		customerService.New(f.store.Customers(), ot),
		f.ledger,
		f.store.Transactor(),
		f.kafka,
		metricsMocks.NewMetrics(),
		cfg,
		redisCache,
		ot,
	)

	return f
}

func (f *engineFixture) room(t *testing.T, number string, status roomModel.Status) int64 {
	t.Helper()

	id, err := f.store.Rooms().Insert(context.Background(), roomModel.Room{HotelID: f.hotelID, ClassID: f.classID, RoomNumber: number, Status: status})
	require.NoError(t, err)

	return id
}

func (f *engineFixture) roomStatus(t *testing.T, id int64) roomModel.Status {
	t.Helper()

	room, err := f.store.Rooms().Get(context.Background(), id)
	require.NoError(t, err)

	return room.Status
}

func (f *engineFixture) bookingStatus(t *testing.T, id int64) bookingModel.Status {
	t.Helper()

	booking, err := f.store.Bookings().Get(context.Background(), id)
	require.NoError(t, err)

	return booking.Status
}

func staffCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "staff@hotel.test")

	return permissions.WithRole(ctx, permissions.RoleStaff)
}

func customerCtx(email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-"+email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return permissions.WithRole(ctx, permissions.RoleCustomer)
}

func roomRequest(roomID, hotelID int64, email string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Email:    email,
		Name:     "Guest",
		HotelID:  hotelID,
		RoomID:   &roomID,
		CheckIn:  stayIn,
		CheckOut: stayOut,
	}
}

func TestEngine_CreateBookingPricesStayAtClassRate(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusConfirmed), res.Status)

	payments, err := f.ledger.ListPayments(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, money.FromMajor(5000), payments[0].Amount)
	assert.Equal(t, string(paymentModel.MethodCash), payments[0].Method)

	// a confirmed stay blocks the room by its dates, not its status
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, f.roomID))

	booking, err := f.engine.GetBooking(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), booking.Nights)
	assert.Equal(t, "ada@example.com", booking.CustomerEmail)
	require.NotNil(t, booking.RoomNumber)
	assert.Equal(t, "101", *booking.RoomNumber)

	revenue, err := f.ledger.AggregateRevenue(ctx, paymentModel.RevenueQuery{HotelID: &f.hotelID})
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(5000), revenue.Revenue)
}

func TestEngine_CreateBookingRejections(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	_, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	otherHotel, err := f.store.Hotels().Insert(context.Background(), hotelModel.Hotel{Name: "H2"})
	require.NoError(t, err)

	freeClass, err := f.store.RoomClasses().Insert(context.Background(), hotelModel.RoomClass{HotelID: f.hotelID, Name: "Staff"})
	require.NoError(t, err)

	unpriced, err := f.store.Rooms().Insert(context.Background(), roomModel.Room{HotelID: f.hotelID, ClassID: freeClass, RoomNumber: "900", Status: roomModel.StatusAvailable})
	require.NoError(t, err)

	missing := int64(999)

	tests := []struct {
		name string
		req  func() dto.CreateBookingRequest
		kind failure.Kind
		code int
	}{
		{
			name: "overlapping stay on the same room",
			req: func() dto.CreateBookingRequest {
				req := roomRequest(f.roomID, f.hotelID, "bob@example.com")
				req.CheckIn, req.CheckOut = "2025-03-11", "2025-03-13"

				return req
			},
			kind: failure.KindRoomUnavailable,
		},
		{
			name: "room under maintenance",
			req:  func() dto.CreateBookingRequest { return roomRequest(f.repairID, f.hotelID, "bob@example.com") },
			kind: failure.KindRoomUnavailable,
		},
		{
			name: "unknown room",
			req:  func() dto.CreateBookingRequest { return roomRequest(missing, f.hotelID, "bob@example.com") },
			kind: failure.KindRoomNotFound,
		},
		{
			name: "room of another hotel",
			req:  func() dto.CreateBookingRequest { return roomRequest(f.suiteID, otherHotel, "bob@example.com") },
			kind: failure.KindRoomNotFound,
		},
		{
			name: "inverted dates",
			req: func() dto.CreateBookingRequest {
				req := roomRequest(f.suiteID, f.hotelID, "bob@example.com")
				req.CheckIn, req.CheckOut = stayOut, stayIn

				return req
			},
			kind: failure.KindInvalidDateRange,
		},
		{
			name: "empty stay",
			req: func() dto.CreateBookingRequest {
				req := roomRequest(f.suiteID, f.hotelID, "bob@example.com")
				req.CheckOut = req.CheckIn

				return req
			},
			kind: failure.KindInvalidDateRange,
		},
		{
			name: "unknown hotel",
			req:  func() dto.CreateBookingRequest { return roomRequest(f.suiteID, missing, "bob@example.com") },
			kind: failure.KindNotFound,
		},
		{
			name: "missing email",
			req:  func() dto.CreateBookingRequest { return roomRequest(f.suiteID, f.hotelID, "") },
			code: http.StatusBadRequest,
		},
		{
			name: "hotel-level booking without an amount",
			req: func() dto.CreateBookingRequest {
				req := roomRequest(f.suiteID, f.hotelID, "bob@example.com")
				req.RoomID = nil

				return req
			},
			code: http.StatusBadRequest,
		},
		{
			name: "unpriced room without an amount",
			req:  func() dto.CreateBookingRequest { return roomRequest(unpriced, f.hotelID, "bob@example.com") },
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.CreateBooking(ctx, tt.req())
			require.Error(t, err)

			if tt.kind != "" {
				assert.Equal(t, tt.kind, failure.GetKind(err))
			} else {
				assert.Equal(t, tt.code, failure.GetCode(err))
			}
		})
	}

	count, err := f.store.Bookings().Count(context.Background(), bookingModel.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngine_HotelLevelBookingCarriesPayment(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, dto.CreateBookingRequest{
		Email: "ada@example.com", HotelID: f.hotelID, CheckIn: stayIn, CheckOut: stayOut, PaymentAmount: money.FromMajor(1800),
	})
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusPending), res.Status)

	payments, err := f.ledger.ListPayments(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, money.FromMajor(1800), payments[0].Amount)
	assert.Equal(t, string(paymentModel.MethodCash), payments[0].Method)
}

func TestEngine_BackToBackStaysShareARoom(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	_, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	next := roomRequest(f.roomID, f.hotelID, "bob@example.com")
	next.CheckIn, next.CheckOut = stayOut, "2025-03-14"

	_, err = f.engine.CreateBooking(ctx, next)
	assert.NoError(t, err)
}

func TestEngine_ConcurrentBookingsOfOneRoom(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	const attempts = 16

	var (
		mu        sync.Mutex
		succeeded []int64
		rejected  int
	)

	var g errgroup.Group
	for i := range attempts {
		g.Go(func() error {
			res, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, fmt.Sprintf("guest%d@example.com", i)))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded = append(succeeded, res.ID)
			case failure.IsKind(err, failure.KindRoomUnavailable):
				rejected++
			default:
				return err
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Len(t, succeeded, 1)
	assert.Equal(t, attempts-1, rejected)

	total, err := f.ledger.AggregateRevenue(ctx, paymentModel.RevenueQuery{})
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(5000), total.Revenue)
}

func TestEngine_PaymentFailureRollsBackBooking(t *testing.T) {
	f := newEngineWithPayments(t, func(ctrl *gomock.Controller) paymentRepo.Payment {
		repo := paymentMocks.NewMockPayment(ctrl)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))

		return repo
	})

	_, err := f.engine.CreateBooking(staffCtx(), roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindPersistenceFailure))

	count, err := f.store.Bookings().Count(context.Background(), bookingModel.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)

	customer, err := f.store.Customers().GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Zero(t, customer.ID)
}

func TestEngine_LegacyCheckIn(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	walkIn := func(number, checkIn, checkOut string) dto.WalkInRequest {
		return dto.WalkInRequest{Name: "Walk In", Proof: "ID-1", RoomNumber: number, HotelID: &f.hotelID, CheckIn: checkIn, CheckOut: checkOut}
	}

	res, err := f.engine.CheckIn(ctx, walkIn("101", stayIn, stayOut))
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Positive(t, res.Code())
	assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, f.roomID))
	assert.Equal(t, bookingModel.StatusCheckedIn, f.bookingStatus(t, res.ID))

	tests := []struct {
		name string
		req  dto.WalkInRequest
		code int64
	}{
		{name: "occupied room", req: walkIn("101", stayIn, stayOut), code: statuscode.CodeRoomOccupied},
		{name: "room under maintenance", req: walkIn("103", stayIn, stayOut), code: statuscode.CodeRoomOccupied},
		{name: "unknown room", req: walkIn("999", stayIn, stayOut), code: statuscode.CodeRoomNotFound},
		{name: "inverted dates", req: walkIn("102", stayOut, stayIn), code: statuscode.CodeInvalidDates},
		{name: "unparseable date", req: walkIn("102", "10/03/2025", stayOut), code: statuscode.CodeInvalidDates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.engine.CheckIn(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.Code())
		})
	}

	// a walk-in whose dates collide with a confirmed stay is refused too
	_, err = f.engine.CreateBooking(ctx, roomRequest(f.suiteID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	res, err = f.engine.CheckIn(ctx, walkIn("102", "2025-03-11", "2025-03-15"))
	require.NoError(t, err)
	assert.Equal(t, statuscode.CodeRoomOccupied, res.Code())
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, f.suiteID))
}

func TestEngine_StayLifecycle(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	err = f.engine.CheckOut(ctx, res.ID)
	assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))

	require.NoError(t, f.engine.CheckInBooking(ctx, res.ID))
	assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, f.roomID))
	assert.Equal(t, bookingModel.StatusCheckedIn, f.bookingStatus(t, res.ID))

	err = f.engine.Cancel(ctx, res.ID)
	assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))

	require.NoError(t, f.engine.CheckOut(ctx, res.ID))
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, f.roomID))
	assert.Equal(t, bookingModel.StatusCheckedOut, f.bookingStatus(t, res.ID))

	err = f.engine.CheckOut(ctx, res.ID)
	assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))

	// the stay is over, so its dates are free again
	_, err = f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "bob@example.com"))
	assert.NoError(t, err)

	err = f.engine.CheckOut(ctx, 999)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestEngine_CancelFreesTheDates(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.engine.Cancel(ctx, res.ID))
	assert.Equal(t, bookingModel.StatusCancelled, f.bookingStatus(t, res.ID))

	// payments stay on the ledger
	payments, err := f.ledger.ListPayments(ctx, res.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	_, err = f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "bob@example.com"))
	assert.NoError(t, err)

	err = f.engine.Cancel(ctx, res.ID)
	assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))
}

func TestEngine_HoldAssignConfirm(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	pending := dto.CreateBookingRequest{Email: "ada@example.com", HotelID: f.hotelID, CheckIn: stayIn, CheckOut: stayOut, PaymentAmount: money.FromMajor(1000)}

	res, err := f.engine.CreateBooking(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusPending), res.Status)

	err = f.engine.CheckInBooking(ctx, res.ID)
	assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))

	err = f.engine.AssignRoom(ctx, res.ID, dto.AssignRoomRequest{RoomID: f.repairID})
	assert.True(t, failure.IsKind(err, failure.KindRoomUnavailable))

	require.NoError(t, f.engine.AssignRoom(ctx, res.ID, dto.AssignRoomRequest{RoomID: f.roomID}))
	assert.Equal(t, roomModel.StatusReserved, f.roomStatus(t, f.roomID))

	// assigning the same room again is a no-op
	require.NoError(t, f.engine.AssignRoom(ctx, res.ID, dto.AssignRoomRequest{RoomID: f.roomID}))

	// moving the hold releases the previous room
	require.NoError(t, f.engine.AssignRoom(ctx, res.ID, dto.AssignRoomRequest{RoomID: f.suiteID}))
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, f.roomID))
	assert.Equal(t, roomModel.StatusReserved, f.roomStatus(t, f.suiteID))

	require.NoError(t, f.engine.ConfirmBooking(ctx, res.ID, dto.ConfirmRequest{}))
	assert.Equal(t, bookingModel.StatusConfirmed, f.bookingStatus(t, res.ID))
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, f.suiteID))

	err = f.engine.AssignRoom(ctx, res.ID, dto.AssignRoomRequest{RoomID: f.roomID})
	assert.True(t, failure.IsKind(err, failure.KindInvalidTransition))

	// the confirmed stay now blocks its room
	_, err = f.engine.CreateBooking(ctx, roomRequest(f.suiteID, f.hotelID, "bob@example.com"))
	assert.True(t, failure.IsKind(err, failure.KindRoomUnavailable))
}

func TestEngine_CancelReleasesHold(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, dto.CreateBookingRequest{Email: "ada@example.com", HotelID: f.hotelID, CheckIn: stayIn, CheckOut: stayOut, PaymentAmount: money.FromMajor(1000)})
	require.NoError(t, err)

	require.NoError(t, f.engine.AssignRoom(ctx, res.ID, dto.AssignRoomRequest{RoomID: f.roomID}))
	require.NoError(t, f.engine.Cancel(ctx, res.ID))

	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, f.roomID))
}

func TestEngine_ConfirmRequiresRoom(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, dto.CreateBookingRequest{Email: "ada@example.com", HotelID: f.hotelID, CheckIn: stayIn, CheckOut: stayOut, PaymentAmount: money.FromMajor(1000)})
	require.NoError(t, err)

	err = f.engine.ConfirmBooking(ctx, res.ID, dto.ConfirmRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, bookingModel.StatusPending, f.bookingStatus(t, res.ID))

	require.NoError(t, f.engine.ConfirmBooking(ctx, res.ID, dto.ConfirmRequest{RoomID: &f.roomID}))

	booking, err := f.store.Bookings().Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.True(t, booking.OnRoom(f.roomID))
}

func TestEngine_CustomerScope(t *testing.T) {
	f := newEngine(t)
	ada := customerCtx("ada@example.com")
	bob := customerCtx("bob@example.com")

	// customers book under their own email whatever the request says
	req := roomRequest(f.roomID, f.hotelID, "someone.else@example.com")

	res, err := f.engine.CreateBooking(ada, req)
	require.NoError(t, err)

	booking, err := f.engine.GetBooking(ada, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", booking.CustomerEmail)

	_, err = f.engine.GetBooking(bob, res.ID)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))

	mine, err := f.engine.MyBookings(ada, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.TotalData)

	theirs, err := f.engine.MyBookings(bob, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, theirs.TotalData)

	err = f.engine.Cancel(bob, res.ID)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	require.NoError(t, f.engine.Cancel(ada, res.ID))
}

func TestEngine_CustomerEmailCaseInsensitive(t *testing.T) {
	f := newEngine(t)
	ada := customerCtx(" Ada@Example.com")

	res, err := f.engine.CreateBooking(ada, roomRequest(f.roomID, f.hotelID, ""))
	require.NoError(t, err)

	booking, err := f.engine.GetBooking(ada, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", booking.CustomerEmail)

	// the same customer signing in with a lowercase token
	mine, err := f.engine.MyBookings(customerCtx("ada@example.com"), gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.TotalData)

	mine, err = f.engine.MyBookings(ada, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.TotalData)

	require.NoError(t, f.engine.Cancel(customerCtx("ADA@EXAMPLE.COM"), res.ID))
	assert.Equal(t, bookingModel.StatusCancelled, f.bookingStatus(t, res.ID))
}

func TestEngine_ListBookings(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	first, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	_, err = f.engine.CreateBooking(ctx, roomRequest(f.suiteID, f.hotelID, "bob@example.com"))
	require.NoError(t, err)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "id; DROP TABLE bookings", SortDir: gDto.SortDirAsc}

	all, err := f.engine.ListBookings(ctx, bookingModel.Filter{}, params)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalData)

	require.NoError(t, f.engine.Cancel(ctx, first.ID))

	// the cancellation invalidated the cached listing
	cancelled := bookingModel.StatusCancelled
	listed, err := f.engine.ListBookings(ctx, bookingModel.Filter{Status: &cancelled}, params)
	require.NoError(t, err)
	require.Len(t, listed.Bookings, 1)
	assert.Equal(t, first.ID, listed.Bookings[0].ID)

	unknown := bookingModel.Status("lost")
	_, err = f.engine.ListBookings(ctx, bookingModel.Filter{Status: &unknown}, params)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestEngine_GetBookingCacheInvalidatedByTransition(t *testing.T) {
	f := newEngine(t)
	ctx := staffCtx()

	res, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	booking, err := f.engine.GetBooking(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusConfirmed), booking.Status)
	assert.NotEmpty(t, f.redis.Keys())

	require.NoError(t, f.engine.CheckInBooking(ctx, res.ID))

	booking, err = f.engine.GetBooking(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusCheckedIn), booking.Status)
}

func TestEngine_PublishesEventsAfterCommit(t *testing.T) {
	f := newEngine(t)
	f.cfg.Kafka.Enable = true
	ctx := staffCtx()

	f.kafka.EXPECT().
		SendMessages(gomock.Any(), "booking.events", gomock.Any()).
		Return(nil).
		Times(2)

	res, err := f.engine.CreateBooking(ctx, roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	require.NoError(t, err)

	// failed operations publish nothing
	err = f.engine.CheckOut(ctx, res.ID)
	require.Error(t, err)

	require.NoError(t, f.engine.CheckInBooking(ctx, res.ID))
}

func TestEngine_PublishFailureDoesNotFailOperation(t *testing.T) {
	f := newEngine(t)
	f.cfg.Kafka.Enable = true

	f.kafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	_, err := f.engine.CreateBooking(staffCtx(), roomRequest(f.roomID, f.hotelID, "ada@example.com"))
	assert.NoError(t, err)
}
