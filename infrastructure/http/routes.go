package http

import (
	"welcomehome/frontend/donate"
	"welcomehome/frontend/login"
	"welcomehome/frontend/lookup"
	"welcomehome/frontend/register"
)

// RegisterAuthRoutes registers register/login/logout routes.
func (s *Server) RegisterAuthRoutes() {
	s.router.Get("/register", register.RegisterPageQueryHandler(s.Shell))
	s.router.Post("/register", register.RegisterCommandHandler(s.Shell))
	s.router.Get("/login", login.GetLoginScreenHandler(s.Shell))
	s.router.Post("/login", login.CreateLoginHandler(s.Shell))
	s.router.Post("/logout", login.LogoutHandler(s.Shell))
}

// RegisterDonateRoutes registers the staff-only donation screen. The role
// table decides what the screen renders; the backend enforces it again.
func (s *Server) RegisterDonateRoutes() {
	s.Shell.Rbac.AddDonationRules()
	s.router.Get("/donate", donate.GetDonateScreenHandler(s.Shell))
	s.router.Post("/donate", donate.CreateDonationHandler(s.Shell))
	s.router.Get("/donate/{id}/label", donate.DonationLabelHandler(s.Shell))
}

// RegisterLookupRoutes registers the item and order lookups. Any logged-in
// user may use them.
func (s *Server) RegisterLookupRoutes() {
	s.router.Get("/find-item", lookup.FindItemPageQueryHandler(s.Shell))
	s.router.Post("/find-item", lookup.FindItemCommandHandler(s.Shell))
	s.router.Get("/find-order", lookup.FindOrderPageQueryHandler(s.Shell))
	s.router.Post("/find-order", lookup.FindOrderCommandHandler(s.Shell))
}
