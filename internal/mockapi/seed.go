package mockapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
)

var servicePrices = map[models.Service]decimal.Decimal{
	models.ServiceHaircut:         decimal.NewFromInt(1500),
	models.ServiceColoring:        decimal.NewFromInt(3500),
	models.ServiceStyling:         decimal.NewFromInt(1200),
	models.ServiceManicure:        decimal.NewFromInt(1800),
	models.ServicePedicure:        decimal.NewFromInt(2000),
	models.ServiceSpa:             decimal.NewFromInt(4500),
	models.ServiceHighlights:      decimal.NewFromInt(4000),
	models.ServicePerm:            decimal.NewFromInt(5000),
	models.ServiceKeratinStraight: decimal.NewFromInt(6000),
}

// ServicePrices lists the price of every catalog service in catalog order.
func ServicePrices() []models.ServicePrice {
	out := make([]models.ServicePrice, 0, len(models.ExtendedServices))
	for _, s := range models.ExtendedServices {
		out = append(out, models.ServicePrice{Name: s, Price: servicePrices[s]})
	}
	return out
}

const noImage = "https://med-rzn.ru/wp-content/uploads/2021/09/no_image-800x600-1.jpg"

func ptr[T any](v T) *T { return &v }

// Seed fills an empty store with the demo data set: three users
// (admin/admin, maria/12345, ivan/12345), four salons with two masters
// each, three clients and ten appointments starting tomorrow.
func Seed(s *Store) error {
	if _, err := s.AddUser("admin", "admin", "Администратор", models.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	maria, err := s.AddUser("maria", "12345", "Мария Иванова", models.RoleClient)
	if err != nil {
		return fmt.Errorf("seed maria: %w", err)
	}
	ivan, err := s.AddUser("ivan", "12345", "Иван Петров", models.RoleClient)
	if err != nil {
		return fmt.Errorf("seed ivan: %w", err)
	}

	salons := []models.Salon{
		{Name: "Салон красоты 'Эльза'", Address: "ул. Тверская, д. 12", Lat: ptr(55.764276), Lon: ptr(37.606831), PhotoURL: noImage},
		{Name: "Beauty Studio 'Жасмин'", Address: "Кутузовский проспект, д. 5", Lat: ptr(55.752004), Lon: ptr(37.566833), PhotoURL: noImage},
		{Name: "Салон 'Magnolia'", Address: "ул. Арбат, д. 20", Lat: ptr(55.750584), Lon: ptr(37.588039), PhotoURL: noImage},
		{Name: "SPA-центр 'Релакс'", Address: "Ленинский проспект, д. 45", Lat: ptr(55.706892), Lon: ptr(37.584573), PhotoURL: noImage},
	}
	masterNames := []string{
		"Анна Иванова", "Мария Петрова", "Елена Сидорова", "Ольга Смирнова",
		"Татьяна Козлова", "Наталья Волкова", "Ирина Соколова", "Екатерина Морозова",
	}

	var saved []models.Salon
	var masters []models.Master
	for i, sl := range salons {
		sl = s.AddSalon(sl)
		saved = append(saved, sl)
		for j := 0; j < 2; j++ {
			masters = append(masters, s.AddMaster(models.Master{
				Name:           masterNames[i*2+j],
				SalonID:        sl.ID,
				Specialization: "Парикмахер-стилист",
				Experience:     "5+ лет опыта",
				PhotoURL:       noImage,
			}))
		}
	}

	c1, err := s.AddClient(models.NewClient{Name: maria.Name, Phone: "+7 (999) 111-11-11", SalonID: saved[0].ID}, &maria.ID)
	if err != nil {
		return err
	}
	c2, err := s.AddClient(models.NewClient{Name: ivan.Name, Phone: "+7 (999) 222-22-22", SalonID: saved[1].ID}, &ivan.ID)
	if err != nil {
		return err
	}
	c3, err := s.AddClient(models.NewClient{Name: "Гость без аккаунта", Phone: "+7 (999) 333-33-33", SalonID: saved[0].ID}, nil)
	if err != nil {
		return err
	}

	services := []models.Service{
		models.ServiceHaircut, models.ServiceColoring, models.ServiceStyling,
		models.ServiceManicure, models.ServicePedicure,
	}
	clientIDs := []int64{c1.ID, c2.ID, c3.ID}
	base := s.now().Add(24 * time.Hour).Truncate(time.Hour)
	for i := 0; i < 10; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		_, err := s.AddAppointment(models.NewAppointment{
			MasterID:  masters[i%len(masters)].ID,
			ClientID:  clientIDs[i%len(clientIDs)],
			StartTime: start,
			EndTime:   start.Add(models.AppointmentDuration),
			Service:   services[i%len(services)],
		})
		if err != nil {
			return fmt.Errorf("seed appointment %d: %w", i, err)
		}
	}
	return nil
}
