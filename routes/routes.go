package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"

	"github.com/petitionhq/petition/session"
	"github.com/petitionhq/petition/views"
)

// Routes holds the collaborators every handler needs. Handlers reach the
// database through database.GetDatabase.
type Routes struct {
	Sessions *session.Manager
	Views    *views.Renderer
	Log      *logrus.Logger
}

func (rt Routes) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/register", http.StatusFound)
	})

	r.Group(func(r chi.Router) {
		r.Use(session.RequireLoggedOut)

		r.Get("/register", rt.RegisterForm)
		r.Get("/login", rt.LoginForm)

		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(
				httprate.KeyByIP,
				httprate.KeyByEndpoint,
			)))

			r.Post("/register", rt.Register)
			r.Post("/login", rt.Login)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(session.RequireLoggedIn)

		r.Get("/profile", rt.ProfileForm)
		r.Post("/profile", rt.SaveProfile)
		r.Get("/editprofile", rt.EditProfileForm)
		r.Post("/editprofile", rt.EditProfile)

		r.Group(func(r chi.Router) {
			r.Use(session.NotSigned)

			r.Get("/petition", rt.PetitionForm)
			r.Post("/petition", rt.Sign)
		})

		r.Group(func(r chi.Router) {
			r.Use(session.RequireSigned)

			r.Get("/thankyou", rt.ThankYou)
			r.Post("/thankyou", rt.Unsign)
			r.Get("/about", rt.About)
			r.Get("/signers", rt.Signers)
			r.Get("/signers/{city}", rt.SignersByCity)
		})
	})

	r.Get("/logout", rt.Logout)

	r.Handle("/static/*", rt.Views.Static())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/", http.StatusFound)
	})

	return r
}

// base assembles the layout fields for the current request.
func (rt Routes) base(r *http.Request) views.Base {
	b := views.Base{CSRFToken: session.Token(r.Context())}

	if s := session.FromContext(r.Context()); s != nil {
		b.LoggedIn = true
		b.FirstName = s.FirstName
	}

	return b
}
