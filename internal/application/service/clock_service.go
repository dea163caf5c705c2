package service

import "time"

// ServerClock is the till's view of the server time.
type ServerClock struct {
	Date string `json:"date"`
	Time string `json:"time"`
	ISO  string `json:"iso"`
}

// ClockService reports the server time in the store's timezone so tills
// with drifting clocks show the same time as receipts.
type ClockService struct {
	loc *time.Location
	now func() time.Time
}

// NewClockService creates a new clock service
func NewClockService(loc *time.Location) *ClockService {
	if loc == nil {
		loc = time.Local
	}
	return &ClockService{loc: loc, now: time.Now}
}

// Now returns the current server time.
func (s *ClockService) Now() ServerClock {
	t := s.now().In(s.loc)
	return ServerClock{
		Date: t.Format("02 Jan 2006"),
		Time: t.Format("03:04:05 PM"),
		ISO:  t.Format(time.RFC3339),
	}
}
