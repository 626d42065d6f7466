package models

// Overview is the admin dashboard summary.
type Overview struct {
	TotalSalons          int `json:"total_salons"`
	TotalMasters         int `json:"total_masters"`
	TotalClients         int `json:"total_clients"`
	TotalAppointments    int `json:"total_appointments"`
	RecentAppointments   int `json:"recent_appointments_30d"`
	UpcomingAppointments int `json:"upcoming_appointments"`
	TodayAppointments    int `json:"today_appointments"`
}

// ServiceStat counts appointments per service.
type ServiceStat struct {
	Service Service `json:"service"`
	Count   int     `json:"count"`
}
