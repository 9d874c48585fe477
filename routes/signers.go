package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/petitionhq/petition/database"
	"github.com/petitionhq/petition/views"
)

type signerView struct {
	Name string
	Age  string
	City string
	URL  string
}

type signersData struct {
	views.Base

	City    string
	Signers []signerView
}

func (rt Routes) Signers(w http.ResponseWriter, r *http.Request) {
	list, err := database.ListSigners(database.GetDatabase())
	if err != nil {
		rt.Log.WithError(err).Error("failed to list signers")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	rt.Views.Render(w, "signers", signersData{
		Base:    rt.base(r),
		Signers: signerViews(list),
	})
}

func (rt Routes) SignersByCity(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	list, err := database.ListSignersByCity(database.GetDatabase(), city)
	if err != nil {
		rt.Log.WithError(err).Error("failed to list signers by city")
		http.Redirect(w, r, "/signers", http.StatusFound)
		return
	}

	rt.Views.Render(w, "signers", signersData{
		Base:    rt.base(r),
		City:    city,
		Signers: signerViews(list),
	})
}

func signerViews(signers []database.Signer) []signerView {
	out := make([]signerView, 0, len(signers))

	for _, s := range signers {
		v := signerView{
			Name: strings.TrimSpace(s.FirstName + " " + s.LastName),
		}

		if s.Age != nil {
			v.Age = strconv.Itoa(*s.Age)
		}
		if s.City != nil {
			v.City = *s.City
		}
		if s.HomepageURL != nil {
			v.URL = database.NormalizeURL(*s.HomepageURL)
		}

		out = append(out, v)
	}

	return out
}
