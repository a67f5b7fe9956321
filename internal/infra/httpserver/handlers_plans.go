package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/udyamsakhi/internal/domain/plan"
)

func (r *Router) handleCreatePlan(w http.ResponseWriter, req *http.Request) error {
	var in plan.Input
	if err := decode(w, req, &in); err != nil {
		return err
	}
	p, err := r.svc.Plans.Create(req.Context(), userID(req), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, p)
	return nil
}

func (r *Router) handleListPlans(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Plans.List(req.Context(), userID(req))
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleGetPlan(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	p, err := r.svc.Plans.Get(req.Context(), userID(req), id)
	if err != nil {
		return err
	}
	return ok(w, p)
}

func (r *Router) handleDeletePlan(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	if err := r.svc.Plans.Delete(req.Context(), userID(req), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (r *Router) handleRegenerateSection(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var in struct {
		Feedback string `json:"feedback"`
	}
	if err := decode(w, req, &in); err != nil {
		return err
	}
	p, err := r.svc.Plans.RegenerateSection(req.Context(), userID(req), id, chi.URLParam(req, "section"), in.Feedback)
	if err != nil {
		return err
	}
	return ok(w, p)
}

func (r *Router) handleEditSection(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var in struct {
		Content string `json:"content"`
	}
	if err := decode(w, req, &in); err != nil {
		return err
	}
	p, err := r.svc.Plans.EditSection(req.Context(), userID(req), id, chi.URLParam(req, "section"), in.Content)
	if err != nil {
		return err
	}
	return ok(w, p)
}

func (r *Router) handleExportPlan(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	format := req.URL.Query().Get("format")
	body, ctype, err := r.svc.Plans.Export(req.Context(), userID(req), id, format)
	if err != nil {
		return err
	}
	if format == "" {
		format = "md"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="plan-%s.%s"`, id, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return nil
}

func (r *Router) handleGenerateMarket(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	d, err := r.svc.Market.Generate(req.Context(), userID(req), id, chi.URLParam(req, "type"))
	if err != nil {
		return err
	}
	return ok(w, d)
}

func (r *Router) handleGetMarket(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	d, err := r.svc.Market.Get(req.Context(), userID(req), id, chi.URLParam(req, "type"))
	if err != nil {
		return err
	}
	return ok(w, d)
}

func (r *Router) handleListMarket(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	list, err := r.svc.Market.List(req.Context(), userID(req), id)
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleRecommendMarketplaces(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	matches, err := r.svc.Marketplaces.Recommend(req.Context(), userID(req), id)
	if err != nil {
		return err
	}
	return ok(w, orEmpty(matches))
}

func (r *Router) handleForecast(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	res, err := r.svc.Funding.Forecast(req.Context(), userID(req), id)
	if err != nil {
		return err
	}
	return ok(w, res)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
