package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"velora/internal/export"
	"velora/internal/models"
	"velora/internal/seo"
)

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	var services []models.Service
	if q != "" {
		s.catalog.SetQuery(q)
		services = s.catalog.Results()
	} else {
		s.catalog.ClearQuery()
		services = s.catalog.Services()
	}
	if services == nil {
		services = []models.Service{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"services": services,
		"query":    s.catalog.Query(),
	})
}

func (s *HTTPServer) handleServiceByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/services/"
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	svc := s.catalog.ServiceByID(id)
	if svc == nil {
		writeError(w, http.StatusNotFound, "service not found")
		return
	}

	writeJSON(w, http.StatusOK, svc)
}

// handleBooking multiplexes the current-draft operations: GET reads, POST
// starts, PATCH updates, DELETE cancels.
func (s *HTTPServer) handleBooking(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		current := s.store.Current()
		if current == nil {
			writeError(w, http.StatusNotFound, "no current booking")
			return
		}
		writeJSON(w, http.StatusOK, current)

	case http.MethodPost:
		type request struct {
			ServiceID int64  `json:"service_id"`
			VariantID string `json:"variant_id"`
		}
		var body request
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		svc := s.catalog.ServiceByID(body.ServiceID)
		if svc == nil {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		variant := svc.VariantByID(body.VariantID)
		if variant == nil {
			writeError(w, http.StatusNotFound, "variant not found")
			return
		}

		booking := s.store.Start(r.Context(), *svc, *variant)
		writeJSON(w, http.StatusCreated, booking)

	case http.MethodPatch:
		var patch models.BookingPatch
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if s.store.Current() == nil {
			writeError(w, http.StatusConflict, "no current booking")
			return
		}

		s.store.Update(r.Context(), patch)
		writeJSON(w, http.StatusOK, s.store.Current())

	case http.MethodDelete:
		s.store.Cancel(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	confirmed := s.store.Confirm(r.Context())
	if confirmed == nil {
		writeError(w, http.StatusConflict, "no current booking to confirm")
		return
	}

	writeJSON(w, http.StatusOK, confirmed)
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"bookings": s.store.History()})

	case http.MethodDelete:
		s.store.ClearHistory(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/bookings/"
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	booking := s.store.GetByID(id)
	if booking == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	f, err := export.BuildWorkbook(s.store.History())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build export workbook")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	// Keep a dated copy on disk for operators alongside the download.
	if s.exportDir != "" {
		path, err := export.Save(f, s.exportDir)
		if err != nil {
			s.logger.Error().Err(err).Str("dir", s.exportDir).Msg("failed to save export workbook")
		} else {
			s.logger.Info().Str("path", path).Msg("export workbook saved")
			w.Header().Set("X-Export-Path", path)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("failed to stream export workbook")
	}
}

// handleMeta computes everything a page head needs for a requested path:
// canonical URL, hreflang alternates, social tags with validation, JSON-LD.
func (s *HTTPServer) handleMeta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	path := q.Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	page := s.pageFromQuery(path, q)
	tags := s.composer.ComposeSocialTags(page)

	writeJSON(w, http.StatusOK, map[string]any{
		"canonical":  s.composer.ResolveCanonical(path),
		"alternates": s.composer.Hreflang(path),
		"tags":       tags,
		"validation": seo.Validate(tags),
		"jsonld":     s.composer.BuildJSONLD(s.schemaParts(page)),
	})
}

func (s *HTTPServer) pageFromQuery(path string, q map[string][]string) seo.Page {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	meta := seo.PageMeta{
		Title:       get("title"),
		Description: get("description"),
		Path:        path,
	}
	if img := get("image"); img != "" {
		meta.Image = &seo.Image{URL: img, Alt: get("image_alt")}
	}

	switch seo.ContentType(get("type")) {
	case seo.ContentHomepage:
		return seo.HomePage{PageMeta: meta}
	case seo.ContentCity:
		return seo.CityPage{PageMeta: meta, CityName: get("city")}
	case seo.ContentService:
		return seo.ServicePage{PageMeta: meta, ServiceName: get("service")}
	case seo.ContentBlog:
		return seo.BlogPost{
			PageMeta:    meta,
			PublishedAt: get("published"),
			ModifiedAt:  get("modified"),
			Author:      get("author"),
		}
	case seo.ContentLegal:
		return seo.LegalPage{PageMeta: meta}
	default:
		return seo.SpecialPage{PageMeta: meta}
	}
}

// schemaParts enriches service and blog pages with the matching schema
// fragment; other types ship the organization descriptor alone.
func (s *HTTPServer) schemaParts(page seo.Page) seo.SchemaParts {
	meta := page.Meta()
	canonical := s.composer.ResolveCanonical(meta.Path)

	switch p := page.(type) {
	case seo.ServicePage:
		imageURL := ""
		if meta.Image != nil {
			imageURL = meta.Image.URL
		}
		return seo.SchemaParts{
			Product: seo.Product(p.ServiceName, meta.Description, canonical, imageURL, 0, "INR"),
		}
	case seo.BlogPost:
		imageURL := ""
		if meta.Image != nil {
			imageURL = meta.Image.URL
		}
		return seo.SchemaParts{
			Article: seo.Article(meta.Title, canonical, imageURL, p.Author, p.PublishedAt),
		}
	default:
		return seo.SchemaParts{}
	}
}
