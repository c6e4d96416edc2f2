package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/policydoc"
	"github.com/go-chi/chi/v5"
)

type recordSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Sections  int       `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.FindRecords(r.Context(), policydoc.RecordFilter{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summaries := make([]recordSummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, recordSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			Source:    rec.Source,
			Title:     rec.Document.Title,
			Sections:  len(rec.Document.Sections),
			CreatedAt: rec.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": summaries})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.FindRecordByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          rec.ID,
		"name":        rec.Name,
		"source":      rec.Source,
		"contentHash": rec.ContentHash,
		"document":    rec.Document,
		"contents":    policydoc.Contents(rec.Document),
		"createdAt":   rec.CreatedAt,
		"updatedAt":   rec.UpdatedAt,
	})
}

// highlighted is a text field returned both raw and split into segments.
type highlighted struct {
	Raw      string              `json:"raw"`
	Segments []policydoc.Segment `json:"segments"`
}

func highlight(text, q string) highlighted {
	return highlighted{Raw: text, Segments: policydoc.Highlight(text, q)}
}

type itemView struct {
	Title *highlighted `json:"title,omitempty"`
	Text  highlighted  `json:"text"`
}

type sectionView struct {
	ID       string       `json:"id"`
	Index    int          `json:"index"`
	Title    highlighted  `json:"title"`
	Subtitle *highlighted `json:"subtitle,omitempty"`
	Items    []itemView   `json:"items"`
	Link     string       `json:"link"`
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.FindRecordByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query().Get("q")
	base := s.sectionLinkBase(r)

	sections := policydoc.Filter(rec.Document, q)
	views := make([]sectionView, 0, len(sections))
	for _, sec := range sections {
		view := sectionView{
			ID:    sec.ID,
			Index: sec.Index,
			Title: highlight(sec.Title, q),
			Items: make([]itemView, 0, len(sec.Items)),
			Link:  policydoc.SectionLink(base, sec.ID),
		}
		if sec.Subtitle != "" {
			sub := highlight(sec.Subtitle, q)
			view.Subtitle = &sub
		}
		for _, it := range sec.Items {
			iv := itemView{Text: highlight(it.Text, q)}
			if it.Title != "" {
				title := highlight(it.Title, q)
				iv.Title = &title
			}
			view.Items = append(view.Items, iv)
		}
		views = append(views, view)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    policydoc.NormalizeQuery(q),
		"title":    rec.Document.Title,
		"tagline":  policydoc.Tagline,
		"sections": views,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.FindRecordByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The query never narrows an export.
	exp, err := policydoc.Export(rec.Document, policydoc.Format(chi.URLParam(r, "format")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exp.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(exp.Body))
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]any{
		"segments": policydoc.Highlight(query.Get("text"), query.Get("q")),
	})
}
