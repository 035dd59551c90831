package service

import (
	"context"
	"sync"
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/gorm"
)

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	mu    sync.Mutex
	rooms map[uint]*models.Room
}

func newMockRoomRepo(rooms ...*models.Room) *mockRoomRepo {
	m := &mockRoomRepo{rooms: make(map[uint]*models.Room)}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) Update(ctx context.Context, room *models.Room) error {
	return m.Create(ctx, room)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	return m.FindByID(ctx, id)
}

func (m *mockRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	return m.ListBookable(ctx, nil)
}

func (m *mockRoomRepo) ListBookable(ctx context.Context, roomTypeID *uint) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Room
	// Iterate in id order for deterministic results, like the real
	// repository's room-number ordering.
	for id := uint(0); id <= 1000; id++ {
		room, ok := m.rooms[id]
		if !ok || room.Status == models.RoomMaintenance {
			continue
		}
		if roomTypeID != nil && room.RoomTypeID != *roomTypeID {
			continue
		}
		out = append(out, *room)
	}
	return out, nil
}

func (m *mockRoomRepo) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok := m.rooms[id]; ok {
		room.Status = status
	}
	return nil
}

// --- Mock BookingRepository (in-memory, race-safe) ---

type mockBookingRepo struct {
	mu       sync.Mutex
	nextID   uint
	bookings map[uint]*models.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[uint]*models.Booking)}
}

func (m *mockBookingRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	booking.ID = m.nextID
	cp := *booking
	m.bookings[booking.ID] = &cp
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	return m.FindByID(ctx, id)
}

func (m *mockBookingRepo) CountOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkin, checkout time.Time, excludeID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.ID == excludeID || !b.Status.Occupies() {
			continue
		}
		if b.Checkin.Before(checkout) && checkin.Before(b.Checkout) {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (m *mockBookingRepo) UpdateDates(ctx context.Context, tx *gorm.DB, id uint, checkin, checkout time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		b.Checkin, b.Checkout = checkin, checkout
	}
	return nil
}

func (m *mockBookingRepo) ListActive(ctx context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.Status.Occupies() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// --- Mock ServiceRepository ---

type mockServiceRepo struct {
	services map[uint]*models.Service
}

func newMockServiceRepo(services ...*models.Service) *mockServiceRepo {
	m := &mockServiceRepo{services: make(map[uint]*models.Service)}
	for _, s := range services {
		m.services[s.ID] = s
	}
	return m
}

func (m *mockServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	m.services[svc.ID] = svc
	return nil
}

func (m *mockServiceRepo) Update(ctx context.Context, svc *models.Service) error {
	m.services[svc.ID] = svc
	return nil
}

func (m *mockServiceRepo) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	svc, ok := m.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (m *mockServiceRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*models.Service, error) {
	out := make(map[uint]*models.Service)
	for _, id := range ids {
		if svc, ok := m.services[id]; ok {
			out[id] = svc
		}
	}
	return out, nil
}

func (m *mockServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range m.services {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockServiceRepo) ReplaceOptions(ctx context.Context, serviceID uint, options []models.ServiceOption) error {
	if svc, ok := m.services[serviceID]; ok {
		svc.Options = options
	}
	return nil
}

// --- Mock CustomerRepository ---

type mockCustomerRepo struct {
	customers map[uint]*models.Customer
}

func newMockCustomerRepo(customers ...*models.Customer) *mockCustomerRepo {
	m := &mockCustomerRepo{customers: make(map[uint]*models.Customer)}
	for _, c := range customers {
		m.customers[c.ID] = c
	}
	return m
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, nil
}

// --- Mock PromotionRepository ---

type mockPromotionRepo struct {
	promos []models.Promotion
}

func (m *mockPromotionRepo) Create(ctx context.Context, promo *models.Promotion) error {
	m.promos = append(m.promos, *promo)
	return nil
}

func (m *mockPromotionRepo) Update(ctx context.Context, promo *models.Promotion) error { return nil }

func (m *mockPromotionRepo) FindByID(ctx context.Context, id uint) (*models.Promotion, error) {
	for i := range m.promos {
		if m.promos[i].ID == id {
			return &m.promos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPromotionRepo) List(ctx context.Context) ([]models.Promotion, error) {
	return m.promos, nil
}

func (m *mockPromotionRepo) ListActive(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	for _, p := range m.promos {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPromotionRepo) SetActive(ctx context.Context, id uint, active bool) error {
	for i := range m.promos {
		if m.promos[i].ID == id {
			m.promos[i].Active = active
		}
	}
	return nil
}

// --- Mock OrderRepository (single-order, in-memory) ---

type mockOrderRepo struct {
	mu    sync.Mutex
	order *models.Order
}

func (m *mockOrderRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(nil)
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	order.ID = 1
	for i := range order.Lines {
		order.Lines[i].ID = uint(i + 1)
		order.Lines[i].OrderID = order.ID
	}
	cp := *order
	m.order = &cp
	return nil
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(id)
}

func (m *mockOrderRepo) find(id uint) (*models.Order, error) {
	if m.order == nil || m.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.order
	cp.Lines = append([]models.OrderLine(nil), m.order.Lines...)
	return &cp, nil
}

func (m *mockOrderRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	// Transaction already holds the mutex; this mirrors the row lock.
	return m.find(id)
}

func (m *mockOrderRepo) ReplaceLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []models.OrderLine) error {
	for i := range lines {
		lines[i].OrderID = orderID
		lines[i].ID = uint(i + 1)
	}
	m.order.Lines = append([]models.OrderLine(nil), lines...)
	return nil
}

func (m *mockOrderRepo) AppendLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []models.OrderLine) error {
	m.order.Lines = append(m.order.Lines, lines...)
	return nil
}

func (m *mockOrderRepo) SaveBreakdown(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	m.order.Subtotal = order.Subtotal
	m.order.PromotionID = order.PromotionID
	m.order.DiscountAmount = order.DiscountAmount
	m.order.FinalTotal = order.FinalTotal
	m.order.FinalizationRef = order.FinalizationRef
	m.order.FinalizedAt = order.FinalizedAt
	m.order.Status = order.Status
	return nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.OrderStatus) error {
	m.order.Status = status
	return nil
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	if m.order != nil && m.order.CustomerID == customerID {
		return []models.Order{*m.order}, nil
	}
	return nil, nil
}
