package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/petitionhq/petition/database"
	"github.com/petitionhq/petition/session"
	"github.com/petitionhq/petition/views"
)

type registerData struct {
	views.Base

	ErrorMissing bool
	ErrorExists  bool
	Error        bool
}

type loginData struct {
	views.Base

	Error bool
}

func (rt Routes) RegisterForm(w http.ResponseWriter, r *http.Request) {
	rt.Views.Render(w, "register", registerData{Base: rt.base(r)})
}

func (rt Routes) Register(w http.ResponseWriter, r *http.Request) {
	first := strings.TrimSpace(r.FormValue("first"))
	last := strings.TrimSpace(r.FormValue("last"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	data := registerData{Base: rt.base(r)}

	if password == "" {
		data.ErrorMissing = true
		rt.Views.Render(w, "register", data)
		return
	}

	hash, err := session.HashPassword(password)
	if err != nil {
		rt.Log.WithError(err).Error("failed to hash password")
		data.Error = true
		rt.Views.Render(w, "register", data)
		return
	}

	user, err := database.CreateUser(database.GetDatabase(), first, last, email, hash)
	if err != nil {
		rt.Log.WithError(err).Warn("failed to register user")

		switch {
		case errors.Is(err, database.ErrNotNullViolation):
			data.ErrorMissing = true
		case errors.Is(err, database.ErrUniqueViolation):
			data.ErrorExists = true
		default:
			data.Error = true
		}

		rt.Views.Render(w, "register", data)
		return
	}

	err = rt.Sessions.Issue(w, session.Session{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		rt.Log.WithError(err).Error("failed to issue session")
		data.Error = true
		rt.Views.Render(w, "register", data)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (rt Routes) LoginForm(w http.ResponseWriter, r *http.Request) {
	rt.Views.Render(w, "login", loginData{Base: rt.base(r)})
}

func (rt Routes) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	data := loginData{Base: rt.base(r)}

	creds, err := database.GetUserByEmail(database.GetDatabase(), email)
	if err != nil {
		rt.Log.WithError(err).Error("failed to look up user")
		data.Error = true
		rt.Views.Render(w, "login", data)
		return
	}

	if creds == nil || !session.VerifyPassword(creds.PasswordHash, password) {
		data.Error = true
		rt.Views.Render(w, "login", data)
		return
	}

	err = rt.Sessions.Issue(w, session.Session{
		UserID:    creds.UserID,
		FirstName: creds.FirstName,
		LastName:  creds.LastName,
		SigID:     creds.SigID,
	})
	if err != nil {
		rt.Log.WithError(err).Error("failed to issue session")
		data.Error = true
		rt.Views.Render(w, "login", data)
		return
	}

	http.Redirect(w, r, "/petition", http.StatusFound)
}

func (rt Routes) Logout(w http.ResponseWriter, r *http.Request) {
	rt.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
