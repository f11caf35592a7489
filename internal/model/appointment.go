package model

// Appointment exists in the data model only; the backend has no store for it.
type Appointment struct {
	ID        int64     `json:"appointmentId"`
	StudentID int64     `json:"studentId"`
	AdminID   int64     `json:"adminId"`
	Date      Timestamp `json:"dateApp"`
	Time      Timestamp `json:"timeApp"`
	Purpose   string    `json:"purpose"`
	Status    string    `json:"status"`
}
