package routes

import (
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/petitionhq/petition/database"
	"github.com/petitionhq/petition/session"
	"github.com/petitionhq/petition/views"
)

type profileData struct {
	views.Base

	Error bool
}

type editData struct {
	views.Base

	Error bool
	First string
	Last  string
	Email string
	Age   string
	City  string
	URL   string
}

func (rt Routes) ProfileForm(w http.ResponseWriter, r *http.Request) {
	rt.Views.Render(w, "profile", profileData{Base: rt.base(r)})
}

func (rt Routes) SaveProfile(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	ageStr := strings.TrimSpace(r.FormValue("age"))
	city := r.FormValue("city")
	homepage := strings.TrimSpace(r.FormValue("url"))

	// Nothing to store; the profile stays absent.
	if ageStr == "" && strings.TrimSpace(city) == "" && homepage == "" {
		http.Redirect(w, r, "/petition", http.StatusFound)
		return
	}

	age, err := parseAge(ageStr)
	if err == nil {
		err = database.UpsertProfile(database.GetDatabase(), s.UserID, age, city, homepage)
	}

	if err != nil {
		rt.Log.WithError(err).Error("failed to save profile")
		rt.Views.Render(w, "profile", profileData{Base: rt.base(r), Error: true})
		return
	}

	http.Redirect(w, r, "/petition", http.StatusFound)
}

func (rt Routes) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	rec, err := database.GetProfile(database.GetDatabase(), s.UserID)
	if err != nil || rec == nil {
		rt.Log.WithError(err).Error("failed to load profile for edit")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	rt.Views.Render(w, "edit", editFormData(rt.base(r), rec))
}

func (rt Routes) EditProfile(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	db := database.GetDatabase()

	first := strings.TrimSpace(r.FormValue("first"))
	last := strings.TrimSpace(r.FormValue("last"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := strings.TrimSpace(r.FormValue("password"))
	ageStr := strings.TrimSpace(r.FormValue("age"))
	city := r.FormValue("city")
	homepage := strings.TrimSpace(r.FormValue("url"))

	age, err := parseAge(ageStr)
	if err == nil {
		// The user and profile rows change together or not at all.
		err = db.Transaction(func(tx *gorm.DB) error {
			if password != "" {
				hash, err := session.HashPassword(password)
				if err != nil {
					return err
				}

				if err := database.UpdateUserWithPassword(tx, first, last, email, hash, s.UserID); err != nil {
					return err
				}
			} else if err := database.UpdateUser(tx, first, last, email, s.UserID); err != nil {
				return err
			}

			return database.UpsertProfile(tx, s.UserID, age, city, homepage)
		})
	}

	if err != nil {
		rt.Log.WithError(err).Error("failed to update profile")

		rec, ferr := database.GetProfile(db, s.UserID)
		if ferr != nil || rec == nil {
			rt.Log.WithError(ferr).Error("failed to reload profile after failed update")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		data := editFormData(rt.base(r), rec)
		data.Error = true
		rt.Views.Render(w, "edit", data)
		return
	}

	// Refresh the name cache the layout renders from.
	updated := *s
	updated.FirstName = first
	updated.LastName = last
	if err := rt.Sessions.Issue(w, updated); err != nil {
		rt.Log.WithError(err).Error("failed to refresh session")
	}

	http.Redirect(w, r, "/petition", http.StatusFound)
}

func editFormData(b views.Base, rec *database.ProfileRecord) editData {
	d := editData{
		Base:  b,
		First: rec.FirstName,
		Last:  rec.LastName,
		Email: rec.Email,
	}

	if rec.Age != nil {
		d.Age = strconv.Itoa(*rec.Age)
	}
	if rec.City != nil {
		d.City = *rec.City
	}
	if rec.HomepageURL != nil {
		d.URL = *rec.HomepageURL
	}

	return d
}

func parseAge(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}

	age, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}

	return &age, nil
}
