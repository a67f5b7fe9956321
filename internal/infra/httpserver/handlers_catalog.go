package httpserver

import (
	"net/http"

	"github.com/bryanwahyu/udyamsakhi/internal/application/compliance"
)

func (r *Router) handleMarketplaces(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Marketplaces.List(req.Context())
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleFundingSchemes(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Funding.List(req.Context())
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleCourses(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	list, err := r.svc.Learning.ListCourses(req.Context(), q.Get("category"), q.Get("level"))
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleCourse(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	c, err := r.svc.Learning.GetCourse(req.Context(), id)
	if err != nil {
		return err
	}
	return ok(w, c)
}

func (r *Router) handleMentors(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	list, err := r.svc.Learning.ListMentors(req.Context(), q.Get("expertise"), q.Get("industry"))
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleEnroll(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	p, err := r.svc.Learning.Enroll(req.Context(), userID(req), id)
	if err != nil {
		return err
	}
	return ok(w, p)
}

func (r *Router) handleCompleteLesson(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	lesson, err := pathID(req, "lessonId")
	if err != nil {
		return err
	}
	p, err := r.svc.Learning.CompleteLesson(req.Context(), userID(req), id, lesson)
	if err != nil {
		return err
	}
	return ok(w, p)
}

func (r *Router) handleProgress(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Learning.ListProgress(req.Context(), userID(req))
	if err != nil {
		return err
	}
	return ok(w, orEmpty(list))
}

func (r *Router) handleComplianceItems(w http.ResponseWriter, req *http.Request) error {
	items, err := r.svc.Compliance.List(req.Context(), userID(req), req.URL.Query().Get("category"))
	if err != nil {
		return err
	}
	return ok(w, orEmpty(items))
}

func (r *Router) handleGenerateCompliance(w http.ResponseWriter, req *http.Request) error {
	var in struct {
		BusinessType string `json:"businessType"`
		State        string `json:"state"`
	}
	if err := decode(w, req, &in); err != nil {
		return err
	}
	res, err := r.svc.Compliance.Generate(req.Context(), userID(req), in.BusinessType, in.State)
	if err != nil {
		return err
	}
	return ok(w, res)
}

func (r *Router) handleComplianceProgress(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var in compliance.ProgressInput
	if err := decode(w, req, &in); err != nil {
		return err
	}
	p, err := r.svc.Compliance.UpdateProgress(req.Context(), userID(req), id, in)
	if err != nil {
		return err
	}
	return ok(w, p)
}

func (r *Router) handleComplianceChat(w http.ResponseWriter, req *http.Request) error {
	var in struct {
		Question string `json:"question"`
	}
	if err := decode(w, req, &in); err != nil {
		return err
	}
	ans, err := r.svc.Compliance.Chat(req.Context(), userID(req), in.Question)
	if err != nil {
		return err
	}
	return ok(w, ans)
}
