package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	hotelModel "hotelbook/internal/domains/hotel/model"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"
	"slices"
	"strings"
	"time"
)

var errForeignKey = errors.New("foreign key violation")

// Hotel Store implementation

type hotelTable struct{ s *Store }

func (s *Store) Hotels() hotelRepo.Hotel { return hotelTable{s} }

func (t hotelTable) Insert(ctx context.Context, hotel hotelModel.Hotel) (id int64, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		id = t.s.next(hotelModel.TableHotel)
		hotel.ID = id
		undo := putUndo(t.s.hotels, id)
		t.s.hotels[id] = hotel

		return undo, nil
	})

	return id, err
}

func (t hotelTable) Get(_ context.Context, id int64) (hotelModel.Hotel, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return t.s.hotels[id], nil
}

func (t hotelTable) GetAll(_ context.Context, params gDto.QueryParams) ([]hotelModel.Hotel, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	hotels := make([]hotelModel.Hotel, 0, len(t.s.hotels))
	for _, h := range t.s.hotels {
		hotels = append(hotels, h)
	}

	return sortAndPage(hotels, params, func(h hotelModel.Hotel) int64 { return h.ID }, ordering[hotelModel.Hotel]{
		hotelModel.FieldName:        func(a, b hotelModel.Hotel) int { return strings.Compare(a.Name, b.Name) },
		constant.DefaultValueSortBy: func(a, b hotelModel.Hotel) int { return a.CreatedAt.Compare(b.CreatedAt) },
	}), nil
}

func (t hotelTable) Update(ctx context.Context, id int64, patch hotelModel.HotelPatch, user string) (found bool, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		hotel, ok := t.s.hotels[id]
		if !ok {
			return nil, nil
		}

		found = true
		undo := putUndo(t.s.hotels, id)
		patch.Apply(&hotel)
		hotel.Touch(user, timezone.Now())
		t.s.hotels[id] = hotel

		return undo, nil
	})

	return found, err
}

func (t hotelTable) Count(_ context.Context) (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return len(t.s.hotels), nil
}

// RoomClass Store implementation

type classTable struct{ s *Store }

func (s *Store) RoomClasses() hotelRepo.RoomClass { return classTable{s} }

func (t classTable) Insert(ctx context.Context, class hotelModel.RoomClass) (id int64, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		if _, ok := t.s.hotels[class.HotelID]; !ok {
			return nil, fmt.Errorf("room class hotel %d: %w", class.HotelID, errForeignKey)
		}

		id = t.s.next(hotelModel.TableRoomClass)
		class.ID = id
		undo := putUndo(t.s.classes, id)
		t.s.classes[id] = class

		return undo, nil
	})

	return id, err
}

func (t classTable) Get(_ context.Context, id int64) (hotelModel.RoomClass, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return t.s.classes[id], nil
}

func (t classTable) GetByHotel(_ context.Context, hotelID int64) ([]hotelModel.RoomClass, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	classes := []hotelModel.RoomClass{}
	for _, c := range t.s.classes {
		if c.HotelID == hotelID {
			classes = append(classes, c)
		}
	}

	slices.SortFunc(classes, func(a, b hotelModel.RoomClass) int {
		return cmp.Or(cmp.Compare(a.NightlyRate, b.NightlyRate), cmp.Compare(a.ID, b.ID))
	})

	return classes, nil
}

// Room Store implementation

type roomTable struct{ s *Store }

func (s *Store) Rooms() roomRepo.Room { return roomTable{s} }

// joined fills the room class columns. Callers hold s.mu.
func (t roomTable) joined(room roomModel.Room) roomModel.Room {
	class := t.s.classes[room.ClassID]
	room.ClassName = class.Name
	room.NightlyRate = class.NightlyRate

	return room
}

func (t roomTable) Insert(ctx context.Context, room roomModel.Room) (id int64, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		if _, ok := t.s.classes[room.ClassID]; !ok {
			return nil, fmt.Errorf("room class %d: %w", room.ClassID, errForeignKey)
		}

		for _, r := range t.s.rooms {
			if r.HotelID == room.HotelID && r.RoomNumber == room.RoomNumber {
				return nil, failure.Conflict(fmt.Sprintf("room %s already exists in this hotel", room.RoomNumber))
			}
		}

		id = t.s.next(roomModel.TableName)
		room.ID = id
		undo := putUndo(t.s.rooms, id)
		t.s.rooms[id] = room

		return undo, nil
	})

	return id, err
}

func (t roomTable) Get(_ context.Context, id int64) (roomModel.Room, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	room, ok := t.s.rooms[id]
	if !ok {
		return roomModel.Room{}, nil
	}

	return t.joined(room), nil
}

func (t roomTable) GetForUpdate(ctx context.Context, id int64) (roomModel.Room, error) {
	if err := t.s.lock(ctx, lockKey(roomModel.TableName, id)); err != nil {
		return roomModel.Room{}, err
	}

	return t.Get(ctx, id)
}

func (t roomTable) FindByNumber(_ context.Context, hotelID *int64, roomNumber string) (roomModel.Room, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var found roomModel.Room

	for _, r := range t.s.rooms {
		if r.RoomNumber != roomNumber || (hotelID != nil && r.HotelID != *hotelID) {
			continue
		}

		if found.ID == 0 || r.ID < found.ID {
			found = r
		}
	}

	if found.ID == 0 {
		return found, nil
	}

	return t.joined(found), nil
}

func (t roomTable) filter(filter roomModel.Filter) []roomModel.Room {
	rooms := []roomModel.Room{}

	for _, r := range t.s.rooms {
		if filter.HotelID != nil && r.HotelID != *filter.HotelID {
			continue
		}

		if filter.ClassID != nil && r.ClassID != *filter.ClassID {
			continue
		}

		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}

		rooms = append(rooms, t.joined(r))
	}

	return rooms
}

func (t roomTable) GetAll(_ context.Context, filter roomModel.Filter, params gDto.QueryParams) ([]roomModel.Room, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return sortAndPage(t.filter(filter), params, func(r roomModel.Room) int64 { return r.ID }, roomOrdering), nil
}

func (t roomTable) Count(_ context.Context, filter roomModel.Filter) (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return len(t.filter(filter)), nil
}

func (t roomTable) CountByClass(_ context.Context, classID int64) (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	return len(t.filter(roomModel.Filter{ClassID: &classID})), nil
}

func (t roomTable) ListAvailable(_ context.Context, query roomModel.AvailabilityQuery) ([]roomModel.Room, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	available := []roomModel.Room{}

	for _, r := range t.filter(roomModel.Filter{HotelID: &query.HotelID, ClassID: query.ClassID}) {
		if r.Status == roomModel.StatusMaintenance || t.s.overlaps(r.ID, query.CheckIn, query.CheckOut, 0) {
			continue
		}

		available = append(available, r)
	}

	params := gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}

	return sortAndPage(available, params, func(r roomModel.Room) int64 { return r.ID }, roomOrdering), nil
}

func (t roomTable) UpdateStatus(ctx context.Context, id int64, status roomModel.Status, user string) (found bool, err error) {
	err = t.s.write(ctx, func() (func(), error) {
		room, ok := t.s.rooms[id]
		if !ok {
			return nil, nil
		}

		found = true
		undo := putUndo(t.s.rooms, id)
		room.Status = status
		room.Touch(user, timezone.Now())
		t.s.rooms[id] = room

		return undo, nil
	})

	return found, err
}

func (t roomTable) Occupancy(_ context.Context, hotelID *int64) (roomModel.Occupancy, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var occupancy roomModel.Occupancy

	for _, r := range t.filter(roomModel.Filter{HotelID: hotelID}) {
		occupancy.TotalRooms++

		if r.Status == roomModel.StatusOccupied {
			occupancy.OccupiedRooms++
		}
	}

	return occupancy, nil
}

var roomOrdering = ordering[roomModel.Room]{
	roomModel.FieldRoomNumber:   func(a, b roomModel.Room) int { return strings.Compare(a.RoomNumber, b.RoomNumber) },
	roomModel.FieldStatus:       func(a, b roomModel.Room) int { return strings.Compare(string(a.Status), string(b.Status)) },
	constant.DefaultValueSortBy: func(a, b roomModel.Room) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// overlaps reports an active booking on roomID intersecting [checkIn, checkOut). Callers hold s.mu.
func (s *Store) overlaps(roomID int64, checkIn, checkOut time.Time, excludeID int64) bool {
	for _, b := range s.bookings {
		if b.ID == excludeID || !b.OnRoom(roomID) || !b.Status.Active() {
			continue
		}

		if b.Overlaps(checkIn, checkOut) {
			return true
		}
	}

	return false
}
