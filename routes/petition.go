package routes

import (
	"html/template"
	"net/http"

	"github.com/petitionhq/petition/database"
	"github.com/petitionhq/petition/session"
	"github.com/petitionhq/petition/views"
)

type petitionData struct {
	views.Base

	LastName string
	Error    bool
}

type thankYouData struct {
	views.Base

	About     bool
	Count     int64
	Signature template.URL
}

func (rt Routes) PetitionForm(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	rt.Views.Render(w, "petition", petitionData{
		Base:     rt.base(r),
		LastName: s.LastName,
	})
}

func (rt Routes) Sign(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	var body *string
	if v := r.FormValue("signature"); v != "" {
		body = &v
	}

	id, err := database.CreateSignature(database.GetDatabase(), s.UserID, body)
	if err != nil {
		rt.Log.WithError(err).Error("failed to store signature")
		rt.Views.Render(w, "petition", petitionData{
			Base:     rt.base(r),
			LastName: s.LastName,
			Error:    true,
		})
		return
	}

	updated := *s
	updated.SigID = &id
	if err := rt.Sessions.Issue(w, updated); err != nil {
		rt.Log.WithError(err).Error("failed to refresh session")
	}

	http.Redirect(w, r, "/thankyou", http.StatusFound)
}

func (rt Routes) ThankYou(w http.ResponseWriter, r *http.Request) {
	rt.Views.Render(w, "thankyou", rt.thankYou(r, false))
}

func (rt Routes) About(w http.ResponseWriter, r *http.Request) {
	rt.Views.Render(w, "thankyou", rt.thankYou(r, true))
}

// thankYou gathers the signer count and the caller's own signature image.
// Either fetch failing is logged and leaves its field zero; the page still
// renders.
func (rt Routes) thankYou(r *http.Request, about bool) thankYouData {
	s := session.FromContext(r.Context())
	db := database.GetDatabase()

	data := thankYouData{Base: rt.base(r), About: about}

	count, err := database.CountSigners(db)
	if err != nil {
		rt.Log.WithError(err).Error("failed to count signers")
	} else {
		data.Count = count
	}

	body, err := database.GetSignatureByID(db, *s.SigID)
	if err != nil {
		rt.Log.WithError(err).Error("failed to load signature")
	} else if body != nil {
		data.Signature = template.URL(*body)
	}

	return data
}

func (rt Routes) Unsign(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	if err := database.DeleteSignature(database.GetDatabase(), *s.SigID); err != nil {
		rt.Log.WithError(err).Error("failed to delete signature")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	updated := *s
	updated.SigID = nil
	if err := rt.Sessions.Issue(w, updated); err != nil {
		rt.Log.WithError(err).Error("failed to refresh session")
	}

	http.Redirect(w, r, "/petition", http.StatusFound)
}
