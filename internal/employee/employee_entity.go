package employee

import (
	"github.com/google/uuid"
)

// Employee mengikuti konvensi penamaan field milik upstream directory API.
// Nilainya immutable setelah diterima; diganti utuh saat refetch.
type Employee struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"employee_name"`
	Salary int       `json:"employee_salary"`
	Age    int       `json:"employee_age"`
	Title  string    `json:"employee_title"`
	Email  string    `json:"employee_email"`
}
