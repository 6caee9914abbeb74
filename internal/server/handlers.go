package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Santosestevialima/telemarketing/internal/chart"
	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/export"
	"github.com/Santosestevialima/telemarketing/internal/pipeline"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

const headRows = 5

type tableView struct {
	Columns []string
	Rows    [][]string
}

func toTableView(t *dataset.Table, limit int) tableView {
	head := t.Head(limit)
	v := tableView{Columns: head.Columns()}
	for i := 0; i < head.NumRows(); i++ {
		v.Rows = append(v.Rows, head.Row(i))
	}
	return v
}

type optionView struct {
	Value    string
	Selected bool
}

type filterView struct {
	Column  string
	Options []optionView
}

type indexView struct {
	Error string
}

type sessionView struct {
	ID           string
	FileName     string
	RawRows      int
	RawHead      tableView
	AgeLo        int
	AgeHi        int
	AgeMin       int
	AgeMax       int
	Filters      []filterView
	Chart        string
	Applied      bool
	FilteredRows int
	FilteredHead tableView
	RawDist      stats.Distribution
	FilteredDist stats.Distribution
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.tmpl", indexView{Error: msg}); err != nil {
		log.Printf("render index: %v", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, "")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.renderIndex(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("dataset")
	if err != nil {
		s.renderIndex(w, http.StatusBadRequest, "no dataset file in upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.renderIndex(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}
	t, err := s.cache.Load(data, header.Filename)
	if err != nil {
		var ufe *dataset.UnsupportedFormatError
		if errors.As(err, &ufe) {
			s.renderIndex(w, http.StatusUnprocessableEntity,
				"could not read the file as semicolon-delimited CSV or XLSX; please upload bank marketing data")
			return
		}
		s.renderIndex(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := t.RequireColumns(dataset.RequiredColumns()...); err != nil {
		s.renderIndex(w, http.StatusUnprocessableEntity, "dataset is missing expected columns: "+err.Error())
		return
	}
	sess, err := NewSession(header.Filename, t)
	if err != nil {
		s.renderIndex(w, http.StatusUnprocessableEntity, "dataset rejected: "+err.Error())
		return
	}
	s.store.Put(sess)
	http.Redirect(w, r, "/session/"+sess.ID, http.StatusSeeOther)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		apiError(w, http.StatusNotFound, "session not found or expired")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	form, filtered, fdist, applied := sess.Result()
	view := sessionView{
		ID:       sess.ID,
		FileName: sess.FileName,
		RawRows:  sess.Raw.NumRows(),
		RawHead:  toTableView(sess.Raw, headRows),
		AgeLo:    sess.AgeLo,
		AgeHi:    sess.AgeHi,
		AgeMin:   sess.AgeLo,
		AgeMax:   sess.AgeHi,
		Chart:    s.cfg.DefaultChart,
		RawDist:  sess.RawDist,
		Applied:  applied,
	}
	if applied {
		view.AgeMin = form.AgeMin
		view.AgeMax = form.AgeMax
		view.Chart = string(form.Chart)
		view.FilteredRows = filtered.NumRows()
		view.FilteredHead = toTableView(filtered, headRows)
		view.FilteredDist = fdist
	}
	for _, col := range dataset.FilterColumns {
		fv := filterView{Column: col}
		selected := form.Selected[col]
		all := !applied || len(selected) == 0 || contains(selected, pipeline.Sentinel)
		fv.Options = append(fv.Options, optionView{Value: pipeline.Sentinel, Selected: all})
		for _, v := range sess.Options[col] {
			fv.Options = append(fv.Options, optionView{Value: v, Selected: !all && contains(selected, v)})
		}
		view.Filters = append(view.Filters, fv)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "session.tmpl", view); err != nil {
		log.Printf("render session: %v", err)
	}
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		apiError(w, http.StatusBadRequest, "malformed form: "+err.Error())
		return
	}
	ageMin, err := strconv.Atoi(r.PostFormValue("age_min"))
	if err != nil {
		apiError(w, http.StatusBadRequest, "age_min is not an integer")
		return
	}
	ageMax, err := strconv.Atoi(r.PostFormValue("age_max"))
	if err != nil {
		apiError(w, http.StatusBadRequest, "age_max is not an integer")
		return
	}
	if ageMin > ageMax {
		apiError(w, http.StatusBadRequest, "age range is out of order")
		return
	}
	kindStr := r.PostFormValue("chart")
	if kindStr == "" {
		kindStr = s.cfg.DefaultChart
	}
	kind, err := chart.ParseKind(kindStr)
	if err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	selected := make(map[string][]string, len(dataset.FilterColumns))
	sels := make([]pipeline.ColumnSelection, 0, len(dataset.FilterColumns))
	for _, col := range dataset.FilterColumns {
		values := r.PostForm["sel_"+col]
		selected[col] = values
		sel := pipeline.All()
		if len(values) > 0 {
			sel = pipeline.Parse(values)
		}
		sels = append(sels, pipeline.ColumnSelection{Column: col, Selection: sel})
	}
	rng := pipeline.AgeRange{Min: ageMin, Max: ageMax}
	filtered, err := pipeline.Apply(sess.Raw, rng, sels)
	if err != nil {
		// Schema and range invariants were checked at upload and above.
		apiError(w, http.StatusInternalServerError, err.Error())
		return
	}
	fdist, err := stats.Summarize(filtered, dataset.OutcomeColumn)
	if err != nil {
		apiError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sess.SetResult(FormState{
		AgeMin:   ageMin,
		AgeMax:   ageMax,
		Selected: selected,
		Chart:    kind,
	}, filtered, fdist)
	http.Redirect(w, r, "/session/"+sess.ID, http.StatusSeeOther)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	artifact := chi.URLParam(r, "artifact")
	_, filtered, fdist, applied := sess.Result()

	var build func() ([]byte, error)
	contentType := xlsxContentType
	switch artifact {
	case "bank_raw_y.xlsx":
		build = func() ([]byte, error) { return export.ToXLSX(export.DistributionTable(sess.RawDist)) }
	case "bank_filtered.xlsx":
		if !applied {
			apiError(w, http.StatusNotFound, "no filters applied yet")
			return
		}
		build = func() ([]byte, error) { return export.ToXLSX(filtered) }
	case "bank_filtered.csv":
		if !applied {
			apiError(w, http.StatusNotFound, "no filters applied yet")
			return
		}
		contentType = "text/csv; charset=utf-8"
		build = func() ([]byte, error) { return export.ToCSV(filtered) }
	case "bank_filtered_y.xlsx":
		if !applied {
			apiError(w, http.StatusNotFound, "no filters applied yet")
			return
		}
		build = func() ([]byte, error) { return export.ToXLSX(export.DistributionTable(fdist)) }
	default:
		apiError(w, http.StatusNotFound, "unknown download "+artifact)
		return
	}
	blob, err := sess.Blob(artifact, build)
	if err != nil {
		apiError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact+`"`)
	if _, err := w.Write(blob); err != nil {
		log.Printf("write download %s: %v", artifact, err)
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	form, _, fdist, applied := sess.Result()
	kind := chart.Kind(s.cfg.DefaultChart)
	if applied {
		kind = form.Chart
	}
	dist := sess.RawDist
	title := "Raw data"
	if r.URL.Query().Get("source") == "filtered" {
		if !applied {
			apiError(w, http.StatusNotFound, "no filters applied yet")
			return
		}
		dist = fdist
		title = "Filtered data"
	}
	img, err := chart.Render(kind, title, dist, s.theme)
	if err != nil {
		apiError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(img); err != nil {
		log.Printf("write chart: %v", err)
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
