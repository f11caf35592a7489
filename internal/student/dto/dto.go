package dto

type StudentFilters struct {
	Search  string // first name, last name, college, program
	College string // "all" or empty disables
}
