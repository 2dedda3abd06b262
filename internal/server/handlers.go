package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/alnah/go-howto"
)

// formPage is the data handed to the form template.
type formPage struct {
	Labels      howto.Labels
	Title       string
	Description string
	CodeRows    []howto.CodeRow
	ImageRows   []howto.ImageRow
	Languages   []string
	Preview     string
	PDF         bool
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	s.renderForm(w, howto.NewForm())
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	form := formFromValues(r.PostForm)
	applyAction(form, r.PostForm.Get(fieldAction))
	s.renderForm(w, form)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	page := s.exp.Preview(formFromValues(r.PostForm))
	writeHTML(w, []byte(page))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	wantPDF := r.PostForm.Get(fieldFormat) == "pdf"
	if wantPDF && !s.cfg.PDF {
		http.Error(w, "PDF export is disabled", http.StatusBadRequest)
		return
	}

	doc := howto.Collect(formFromValues(r.PostForm))
	if wantPDF {
		s.downloadPDF(w, r, doc)
		return
	}

	res, err := s.exp.Export(r.Context(), howto.ExportInput{Document: doc})
	if err != nil {
		s.logger.Printf("export failed: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	setAttachment(w, res.Filename)
	writeHTML(w, res.HTML)
}

// downloadPDF answers with the PDF of doc, from the cache when possible.
func (s *Server) downloadPDF(w http.ResponseWriter, r *http.Request, doc howto.Document) {
	key := exportKey(doc, s.cfg.Page)
	res, ok := s.pdfs.get(key)
	if !ok {
		var err error
		res, err = s.exp.Export(r.Context(), howto.ExportInput{
			Document: doc,
			PDF:      true,
			Page:     s.cfg.Page,
		})
		if err != nil {
			s.logger.Printf("export failed: %v", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		s.pdfs.set(key, res)
	}

	setAttachment(w, res.PDFFilename)
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(res.PDF)
}

// parseForm parses the urlencoded body and answers 413 or 400 on failure.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("form exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "malformed form", http.StatusBadRequest)
		return false
	}
	return true
}

// renderForm writes the editor page for form, with its preview inlined.
func (s *Server) renderForm(w http.ResponseWriter, form *howto.Form) {
	page := formPage{
		Labels:      s.labels,
		Title:       form.Title(),
		Description: form.Description(),
		CodeRows:    form.CodeRows(),
		ImageRows:   form.ImageRows(),
		Languages:   howto.Languages,
		Preview:     s.exp.Preview(form),
		PDF:         s.cfg.PDF,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, page); err != nil {
		s.logger.Printf("form template: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// setAttachment marks the response as a download named filename.
func setAttachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
