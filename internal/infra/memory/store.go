// Package memory keeps every repository in process memory behind one mutex.
// It backs STORAGE_DRIVER=memory and the handler and service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Store struct {
	mu sync.Mutex

	days     map[string]models.Availability
	appts    map[uint]models.Appointment
	clients  map[uint]models.Client
	users    map[uint]models.User
	payments map[uint]models.Payment

	lastID uint
}

func New() *Store {
	return &Store{
		days:     map[string]models.Availability{},
		appts:    map[uint]models.Appointment{},
		clients:  map[uint]models.Client{},
		users:    map[uint]models.User{},
		payments: map[uint]models.Payment{},
	}
}

func (s *Store) nextID() uint {
	s.lastID++
	return s.lastID
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (s *Store) GetDay(_ context.Context, date string) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.days[date]
	if !ok {
		return nil, nil
	}
	d.BlockedSlots = append(models.ClockList{}, d.BlockedSlots...)
	return &d, nil
}

func (s *Store) ListDays(_ context.Context, from, to string) ([]models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Availability{}
	for date, d := range s.days {
		if date >= from && date <= to {
			d.BlockedSlots = append(models.ClockList{}, d.BlockedSlots...)
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Store) ReplaceDay(_ context.Context, date string, build availability.BuildFunc) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := build(s.liveOn(date))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing, ok := s.days[date]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = s.nextID()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	s.days[date] = *rec
	out := *rec
	return &out, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) ListByDate(_ context.Context, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterAppts(func(ap models.Appointment) bool { return ap.Date == date }), nil
}

func (s *Store) ListByDateRange(_ context.Context, from, to string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterAppts(func(ap models.Appointment) bool { return ap.Date >= from && ap.Date <= to }), nil
}

func (s *Store) ListByClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterAppts(func(ap models.Appointment) bool { return ap.ClientID == clientID }), nil
}

func (s *Store) Get(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appts[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	return &ap, nil
}

func (s *Store) Reserve(_ context.Context, ap *models.Appointment, check appointment.SlotCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.liveOn(ap.Date)
	for _, other := range live {
		if other.Time == ap.Time {
			return appointment.ErrSlotTaken
		}
	}

	if check != nil {
		var day *models.Availability
		if d, ok := s.days[ap.Date]; ok {
			d.BlockedSlots = append(models.ClockList{}, d.BlockedSlots...)
			day = &d
		}
		if err := check(day, live); err != nil {
			return err
		}
	}

	now := time.Now()
	ap.ID = s.nextID()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	s.appts[ap.ID] = *ap
	return nil
}

func (s *Store) Update(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appts[ap.ID]; !ok {
		return appointment.ErrNotFound
	}
	ap.UpdatedAt = time.Now()
	s.appts[ap.ID] = *ap
	return nil
}

func (s *Store) liveOn(date string) []models.Appointment {
	return s.filterAppts(func(ap models.Appointment) bool {
		return ap.Date == date && appointment.Occupies(appointment.Status(ap.Status))
	})
}

func (s *Store) filterAppts(keep func(models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range s.appts {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// --------------------------------------------------
// Clients (person directory)
// --------------------------------------------------

// Clients exposes the client repository; its method names overlap with the
// appointment repository so it lives on a separate view of the same store.
func (s *Store) Clients() *ClientStore { return &ClientStore{s: s} }

type ClientStore struct{ s *Store }

func (c *ClientStore) Create(_ context.Context, cl *models.Client) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.createClient(cl)
	return nil
}

func (c *ClientStore) Get(_ context.Context, id uint) (*models.Client, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cl, ok := c.s.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &cl, nil
}

func (c *ClientStore) Update(_ context.Context, cl *models.Client) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.clients[cl.ID]; !ok {
		return client.ErrNotFound
	}
	cl.UpdatedAt = time.Now()
	c.s.clients[cl.ID] = *cl
	return nil
}

func (c *ClientStore) Delete(_ context.Context, id uint) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.clients[id]; !ok {
		return client.ErrNotFound
	}
	delete(c.s.clients, id)
	return nil
}

func (c *ClientStore) Search(_ context.Context, query string) ([]models.Client, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := []models.Client{}
	for _, cl := range c.s.clients {
		if query == "" ||
			strings.Contains(strings.ToLower(cl.FirstName), query) ||
			strings.Contains(strings.ToLower(cl.LastName), query) ||
			strings.Contains(cl.Phone, query) ||
			strings.Contains(strings.ToLower(cl.Email), query) {
			out = append(out, cl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (c *ClientStore) Lookup(_ context.Context, ids []uint) (map[uint]appointment.Person, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := make(map[uint]appointment.Person, len(ids))
	for _, id := range ids {
		if cl, ok := c.s.clients[id]; ok {
			out[id] = appointment.Person{ID: cl.ID, FirstName: cl.FirstName, LastName: cl.LastName, Reason: cl.Reason}
		}
	}
	return out, nil
}

func (s *Store) createClient(cl *models.Client) {
	now := time.Now()
	cl.ID = s.nextID()
	cl.CreatedAt = now
	cl.UpdatedAt = now
	s.clients[cl.ID] = *cl
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

type UserStore struct{ s *Store }

func (u *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, usr := range u.s.users {
		if usr.Email == email {
			return &usr, nil
		}
	}
	return nil, account.ErrNotFound
}

func (u *UserStore) Create(_ context.Context, usr *models.User, cl *models.Client) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, other := range u.s.users {
		if other.Email == usr.Email {
			return account.ErrEmailTaken
		}
	}

	if cl != nil {
		u.s.createClient(cl)
		usr.ClientID = &cl.ID
	}

	now := time.Now()
	usr.ID = u.s.nextID()
	usr.CreatedAt = now
	usr.UpdatedAt = now
	u.s.users[usr.ID] = *usr
	return nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (s *Store) Payments() *PaymentStore { return &PaymentStore{s: s} }

type PaymentStore struct{ s *Store }

func (p *PaymentStore) Create(_ context.Context, pay *models.Payment) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, other := range p.s.payments {
		if other.AppointmentID == pay.AppointmentID {
			return payment.ErrAlreadyExists
		}
	}

	now := time.Now()
	pay.ID = p.s.nextID()
	pay.CreatedAt = now
	pay.UpdatedAt = now
	p.s.payments[pay.ID] = *pay
	return nil
}

func (p *PaymentStore) Get(_ context.Context, id uint) (*models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	pay, ok := p.s.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return &pay, nil
}

func (p *PaymentStore) GetByAppointment(_ context.Context, appointmentID uint) (*models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, pay := range p.s.payments {
		if pay.AppointmentID == appointmentID {
			return &pay, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (p *PaymentStore) Update(_ context.Context, pay *models.Payment) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.payments[pay.ID]; !ok {
		return payment.ErrNotFound
	}
	pay.UpdatedAt = time.Now()
	p.s.payments[pay.ID] = *pay
	return nil
}

func (p *PaymentStore) ListByClient(_ context.Context, clientID uint) ([]models.Payment, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := []models.Payment{}
	for _, pay := range p.s.payments {
		if pay.ClientID == clientID {
			out = append(out, pay)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Compile-time checks
var (
	_ availability.Repository     = (*Store)(nil)
	_ appointment.Repository      = (*Store)(nil)
	_ client.Repository           = (*ClientStore)(nil)
	_ appointment.PersonDirectory = (*ClientStore)(nil)
	_ account.Repository          = (*UserStore)(nil)
	_ payment.Repository          = (*PaymentStore)(nil)
)
