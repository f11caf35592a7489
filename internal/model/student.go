package model

import "strings"

type Student struct {
	ID        int64  `json:"studentId"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	College   string `json:"college"`
	Program   string `json:"program"`
	UserID    *int64 `json:"userId,omitempty"` // linked auth account, if any
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
