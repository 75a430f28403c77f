package handlers

// HandlerBundle groups the handlers the route registrar needs.
type HandlerBundle struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	Stats   *StatsHandler
}
