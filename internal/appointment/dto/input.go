package dto

type CreateAppointmentInput struct {
	StudentID int64  `json:"studentId" validate:"required"`
	Date      string `json:"dateApp" validate:"required"`
	Time      string `json:"timeApp" validate:"required"`
	Purpose   string `json:"purpose" validate:"required"`
}

type UpdateAppointmentInput struct {
	Date    *string `json:"dateApp,omitempty"`
	Time    *string `json:"timeApp,omitempty"`
	Purpose *string `json:"purpose,omitempty"`
	Status  *string `json:"status,omitempty"`
}
