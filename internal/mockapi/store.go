// Package mockapi is an in-memory stand-in for the salon booking service.
// It mirrors the HTTP shapes the client relies on and is used for local
// development and end-to-end tests of the API client.
package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/common"
)

type userRecord struct {
	models.User
	passwordHash []byte
}

// Store holds every record behind one mutex.
type Store struct {
	mu sync.RWMutex

	cost int
	now  func() time.Time

	users        []userRecord
	salons       []models.Salon
	masters      []models.Master
	clients      []models.Client
	appointments []models.Appointment
}

// NewStore returns an empty store hashing passwords with the given bcrypt
// cost (bcrypt.DefaultCost when cost is 0).
func NewStore(cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{cost: cost, now: time.Now}
}

func (s *Store) AddUser(username, password, name string, role models.Role) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if role == "" {
		role = models.RoleClient
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findUserByUsername(username); ok {
		return models.User{}, common.ErrorAlreadyExists
	}
	u := models.User{ID: int64(len(s.users) + 1), Username: username, Name: name, Role: role}
	s.users = append(s.users, userRecord{User: u, passwordHash: hash})
	return u, nil
}

func (s *Store) findUserByUsername(username string) (int, bool) {
	for i := range s.users {
		if s.users[i].Username == username {
			return i, true
		}
	}
	return 0, false
}

// Authenticate returns the user whose password matches.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	s.mu.RLock()
	i, ok := s.findUserByUsername(username)
	var rec userRecord
	if ok {
		rec = s.users[i]
	}
	s.mu.RUnlock()

	if !ok {
		return models.User{}, common.ErrorUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return models.User{}, common.ErrorUnauthorized
	}
	return rec.User, nil
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.User, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (s *Store) UpdateUser(id int64, p models.ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.findUserByUsername(p.Username); ok && s.users[j].ID != id {
		return models.User{}, common.ErrorAlreadyExists
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = p.Name
			s.users[i].Username = p.Username
			if p.Role != "" {
				s.users[i].Role = p.Role
			}
			return s.users[i].User, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (s *Store) AddSalon(sl models.Salon) models.Salon {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl.ID = int64(len(s.salons) + 1)
	sl.Masters = nil
	s.salons = append(s.salons, sl)
	return sl
}

func (s *Store) Salons() []models.Salon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Salon{}, s.salons...)
}

// Salon returns the salon with its masters.
func (s *Store) Salon(id int64) (models.Salon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.salons {
		if sl.ID == id {
			sl.Masters = s.mastersOf(&id)
			if sl.Masters == nil {
				sl.Masters = []models.Master{}
			}
			return sl, nil
		}
	}
	return models.Salon{}, common.ErrorNotFound
}

func (s *Store) salonExists(id int64) bool {
	for _, sl := range s.salons {
		if sl.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) AddMaster(m models.Master) models.Master {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = int64(len(s.masters) + 1)
	s.masters = append(s.masters, m)
	return m
}

func (s *Store) Masters(salonID *int64) []models.Master {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.mastersOf(salonID)
	if out == nil {
		out = []models.Master{}
	}
	return out
}

func (s *Store) mastersOf(salonID *int64) []models.Master {
	var out []models.Master
	for _, m := range s.masters {
		if salonID == nil || m.SalonID == *salonID {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) Master(id int64) (models.Master, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.masters {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Master{}, common.ErrorNotFound
}

// AddClient creates a client of an existing salon. userID may be nil.
func (s *Store) AddClient(c models.NewClient, userID *int64) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.salonExists(c.SalonID) {
		return models.Client{}, fmt.Errorf("salon %d: %w", c.SalonID, common.ErrorNotFound)
	}
	cl := models.Client{
		ID:      int64(len(s.clients) + 1),
		Name:    c.Name,
		Phone:   c.Phone,
		SalonID: c.SalonID,
		UserID:  userID,
	}
	s.clients = append(s.clients, cl)
	return cl, nil
}

// ClientByUser returns (nil, nil) when the user has no client record.
func (s *Store) ClientByUser(userID int64) *models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.UserID != nil && *c.UserID == userID {
			cl := c
			return &cl
		}
	}
	return nil
}

// AddAppointment books a master for an existing client.
func (s *Store) AddAppointment(a models.NewAppointment) (models.Appointment, error) {
	if err := a.Validate(); err != nil {
		return models.Appointment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var masterOK, clientOK bool
	for _, m := range s.masters {
		masterOK = masterOK || m.ID == a.MasterID
	}
	for _, c := range s.clients {
		clientOK = clientOK || c.ID == a.ClientID
	}
	if !masterOK {
		return models.Appointment{}, fmt.Errorf("master %d: %w", a.MasterID, common.ErrorNotFound)
	}
	if !clientOK {
		return models.Appointment{}, fmt.Errorf("client %d: %w", a.ClientID, common.ErrorNotFound)
	}

	price, _ := servicePrices[a.Service].Float64()
	ap := models.Appointment{
		ID:        int64(len(s.appointments) + 1),
		MasterID:  a.MasterID,
		ClientID:  a.ClientID,
		StartTime: models.NewTimestamp(a.StartTime),
		EndTime:   models.NewTimestamp(a.EndTime),
		Service:   a.Service,
		Price:     &price,
		Status:    models.StatusConfirmed,
	}
	s.appointments = append(s.appointments, ap)
	return ap, nil
}

// Appointments lists every appointment, or those of clientID when set.
func (s *Store) Appointments(clientID *int64) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Appointment{}
	for _, a := range s.appointments {
		if clientID == nil || a.ClientID == *clientID {
			out = append(out, a)
		}
	}
	return out
}

// Working hours offered by AvailableSlots, inclusive.
const (
	firstHour = 9
	lastHour  = 20
)

// AvailableSlots marks an hour busy when a confirmed appointment of the
// master starts in it on date.
func (s *Store) AvailableSlots(masterID int64, date time.Time) []models.Slot {
	day := date.Format(time.DateOnly)

	s.mu.RLock()
	busy := map[int]bool{}
	for _, a := range s.appointments {
		if a.MasterID != masterID || a.Status != models.StatusConfirmed {
			continue
		}
		if a.StartTime.Format(time.DateOnly) == day {
			busy[a.StartTime.Hour()] = true
		}
	}
	s.mu.RUnlock()

	slots := make([]models.Slot, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		slots = append(slots, models.Slot{Time: fmt.Sprintf("%02d:00", h), Hour: h, Available: !busy[h]})
	}
	return slots
}

func (s *Store) Overview() models.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	monthAgo := now.AddDate(0, 0, -30)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	o := models.Overview{
		TotalSalons:       len(s.salons),
		TotalMasters:      len(s.masters),
		TotalClients:      len(s.clients),
		TotalAppointments: len(s.appointments),
	}
	for _, a := range s.appointments {
		start := a.StartTime.Time
		if !start.Before(monthAgo) {
			o.RecentAppointments++
		}
		if start.After(now) {
			o.UpcomingAppointments++
		}
		if !start.Before(todayStart) && start.Before(todayEnd) {
			o.TodayAppointments++
		}
	}
	return o
}

// PopularServices counts appointments per service, most booked first.
func (s *Store) PopularServices() []models.ServiceStat {
	s.mu.RLock()
	counts := map[models.Service]int{}
	for _, a := range s.appointments {
		counts[a.Service]++
	}
	s.mu.RUnlock()

	out := make([]models.ServiceStat, 0, len(counts))
	for svc, n := range counts {
		out = append(out, models.ServiceStat{Service: svc, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.Compare(string(out[i].Service), string(out[j].Service)) < 0
	})
	return out
}
