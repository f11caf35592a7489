package auth

import (
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/pkg/errors"
)

var (
	ErrNotAuthenticated = apiclient.ErrNotAuthenticated
	ErrForbidden        = errors.New("Admin access required")
)

// View names a screen of the console.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewStudents     View = "students"
	ViewProducts     View = "products"
	ViewUniforms     View = "uniforms"
	ViewOrders       View = "orders"
	ViewAppointments View = "appointments"
	ViewShop         View = "shop"
	ViewProfile      View = "profile"
)

var studentViews = map[View]bool{
	ViewShop:    true,
	ViewProfile: true,
}

// Allowed reports whether u may open v. Admins open everything, students only the shop
// and their own profile. The server still enforces its own rules.
func Allowed(u *model.User, v View) error {
	if u == nil {
		return ErrNotAuthenticated
	}
	if u.IsAdmin() || studentViews[v] {
		return nil
	}
	return ErrForbidden
}
