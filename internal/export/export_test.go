package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/export"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	tab, err := dataset.New(
		[]string{"age", "job", "y"},
		[][]string{
			{"30", "admin.", "no"},
			{"45", "technician", "yes"},
		},
	)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tab
}

func TestCSVRoundTrip(t *testing.T) {
	tab := sampleTable(t)
	blob, err := export.ToCSV(tab)
	if err != nil {
		t.Fatalf("to csv: %v", err)
	}
	back, err := dataset.Load(blob, "roundtrip.csv")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !tab.Equal(back) {
		t.Fatal("csv round trip changed the table")
	}
}

func TestXLSXReloads(t *testing.T) {
	tab := sampleTable(t)
	blob, err := export.ToXLSX(tab)
	if err != nil {
		t.Fatalf("to xlsx: %v", err)
	}
	// An xlsx blob must take the loader's spreadsheet fallback path.
	back, err := dataset.Load(blob, "roundtrip.xlsx")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !tab.Equal(back) {
		t.Fatal("xlsx round trip changed the table")
	}
}

func TestDistributionTable(t *testing.T) {
	d := stats.Distribution{
		Column: "y",
		Total:  5,
		Buckets: []stats.Bucket{
			{Value: "no", Count: 3, Percent: 60},
			{Value: "yes", Count: 2, Percent: 40},
		},
	}
	tab := export.DistributionTable(d)
	cols := tab.Columns()
	if cols[0] != "y" || cols[1] != "percent" {
		t.Fatalf("columns = %v", cols)
	}
	if tab.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", tab.NumRows())
	}
	if tab.Row(0)[1] != "60" || tab.Row(1)[1] != "40" {
		t.Fatalf("percent cells = %q %q", tab.Row(0)[1], tab.Row(1)[1])
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	if err := export.WriteFileAtomic(path, []byte("payload")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("content = %q", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}
