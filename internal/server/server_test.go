package server_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Santosestevialima/telemarketing/internal/config"
	"github.com/Santosestevialima/telemarketing/internal/server"
)

const bankCSV = `age;job;marital;default;housing;loan;contact;month;day_of_week;y
20;admin.;married;no;yes;no;cellular;may;mon;no
25;technician;single;no;no;no;telephone;jun;tue;no
30;admin.;married;no;yes;no;cellular;may;mon;yes
35;services;single;no;no;yes;cellular;jul;wed;no
40;admin.;divorced;no;yes;no;telephone;may;thu;yes
45;technician;married;no;no;no;cellular;jun;fri;no
50;services;married;no;yes;no;cellular;may;mon;no
55;admin.;single;no;no;no;telephone;aug;tue;yes
60;technician;married;no;yes;no;cellular;may;wed;no
65;admin.;married;no;no;no;cellular;nov;thu;no
`

func testSettings() *config.Settings {
	return &config.Settings{
		ListenAddr:    ":0",
		MaxUploadMB:   4,
		SessionTTLMin: 10,
		DefaultChart:  "bar",
		ChartWidth:    200,
		ChartHeight:   160,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, err := server.New(testSettings())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// client with redirects disabled so Location headers can be asserted.
func noRedirect() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func upload(t *testing.T, ts *httptest.Server, name, content string) string {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("dataset", name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	resp, err := noRedirect().Post(ts.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload status = %d, body %s", resp.StatusCode, b)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/session/") {
		t.Fatalf("unexpected redirect %q", loc)
	}
	return loc
}

func applyFilters(t *testing.T, ts *httptest.Server, sessionPath string, form url.Values) {
	t.Helper()
	resp, err := noRedirect().PostForm(ts.URL+sessionPath+"/filters", form)
	if err != nil {
		t.Fatalf("post filters: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("apply status = %d, body %s", resp.StatusCode, b)
	}
}

func TestUploadThenApplyThenDownload(t *testing.T) {
	ts := newTestServer(t)
	loc := upload(t, ts, "bank.csv", bankCSV)

	// Page renders before any filter is applied.
	resp, err := http.Get(ts.URL + loc)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d", resp.StatusCode)
	}
	if !bytes.Contains(page, []byte("Before the filters")) {
		t.Fatal("session page missing raw preview")
	}
	if bytes.Contains(page, []byte("After the filters")) {
		t.Fatal("filtered section should not render before apply")
	}

	// Downloads of filtered artifacts are gated on the apply action.
	resp, err = http.Get(ts.URL + loc + "/download/bank_filtered.xlsx")
	if err != nil {
		t.Fatalf("get download: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("pre-apply download status = %d, want 404", resp.StatusCode)
	}

	applyFilters(t, ts, loc, url.Values{
		"age_min":  {"30"},
		"age_max":  {"50"},
		"chart":    {"bar"},
		"sel_job":  {"admin.", "all"},
		"sel_loan": {"no"},
	})

	resp, err = http.Get(ts.URL + loc)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !bytes.Contains(page, []byte("After the filters")) {
		t.Fatal("filtered section missing after apply")
	}

	resp, err = http.Get(ts.URL + loc + "/download/bank_filtered.xlsx")
	if err != nil {
		t.Fatalf("get download: %v", err)
	}
	blob, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", resp.StatusCode)
	}
	if !bytes.HasPrefix(blob, []byte("PK")) {
		t.Fatal("xlsx download is not a zip container")
	}

	resp, err = http.Get(ts.URL + loc + "/download/bank_filtered.csv")
	if err != nil {
		t.Fatalf("get csv: %v", err)
	}
	blob, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	// Sentinel won for job, loan=no dropped row with loan=yes; ages 30..50.
	lines := bytes.Count(bytes.TrimSpace(blob), []byte("\n")) + 1
	if lines != 5 {
		t.Fatalf("csv has %d lines, want header+4 rows:\n%s", lines, blob)
	}
}

func TestChartEndpoint(t *testing.T) {
	ts := newTestServer(t)
	loc := upload(t, ts, "bank.csv", bankCSV)

	resp, err := http.Get(ts.URL + loc + "/chart.png?source=raw")
	if err != nil {
		t.Fatalf("get chart: %v", err)
	}
	img, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("chart status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(img, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("chart is not a PNG")
	}

	// Filtered chart requires an applied form.
	resp, err = http.Get(ts.URL + loc + "/chart.png?source=filtered")
	if err != nil {
		t.Fatalf("get filtered chart: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("pre-apply filtered chart status = %d, want 404", resp.StatusCode)
	}
}

func TestUploadRejectsGarbage(t *testing.T) {
	ts := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("dataset", "noise.bin")
	fw.Write([]byte{0x00, 0x01, 0xff})
	mw.Close()

	resp, err := http.Post(ts.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if !bytes.Contains(page, []byte("could not read the file")) {
		t.Fatal("error page should explain the rejection")
	}
}

func TestUploadRejectsMissingColumns(t *testing.T) {
	ts := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("dataset", "partial.csv")
	io.WriteString(fw, "age;job\n30;admin.\n")
	mw.Close()

	resp, err := http.Post(ts.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("post upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestApplyRejectsInvertedRange(t *testing.T) {
	ts := newTestServer(t)
	loc := upload(t, ts, "bank.csv", bankCSV)
	resp, err := http.PostForm(ts.URL+loc+"/filters", url.Values{
		"age_min": {"50"},
		"age_max": {"30"},
		"chart":   {"bar"},
	})
	if err != nil {
		t.Fatalf("post filters: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/session/no-such-id")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestFilterMatchingNothingRendersEmpty(t *testing.T) {
	ts := newTestServer(t)
	loc := upload(t, ts, "bank.csv", bankCSV)
	applyFilters(t, ts, loc, url.Values{
		"age_min": {"20"},
		"age_max": {"65"},
		"chart":   {"pie"},
		"sel_job": {"student"},
	})
	resp, err := http.Get(ts.URL + loc)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !bytes.Contains(page, []byte("<p>0 rows</p>")) {
		t.Fatal("empty result should render, not error")
	}
	// The filtered chart degrades to a placeholder image.
	resp, err = http.Get(ts.URL + loc + "/chart.png?source=filtered")
	if err != nil {
		t.Fatalf("get chart: %v", err)
	}
	img, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(img, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatalf("placeholder chart status %d", resp.StatusCode)
	}
}
