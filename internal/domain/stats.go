package domain

// DashboardStats aggregates platform figures, globally or for one provider
type DashboardStats struct {
	UsersByRole          map[Role]int
	ServicesTotal        int
	ServicesAvailable    int
	BookingsByStatus     map[BookingStatus]int
	BookingsTotal        int
	Revenue              float64
	MaintenancesByStatus map[MaintenanceStatus]int
	UnreadNotifications  int
}

// StatsScope narrows statistics to a provider; nil means platform-wide
type StatsScope struct {
	ProviderID *int64
}
