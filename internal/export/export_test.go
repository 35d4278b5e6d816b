package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aidetect/internal/detect"
	"aidetect/internal/storage"
)

func sampleRecords() []storage.Record {
	return []storage.Record{
		{
			ID:          "r1",
			Filename:    "a.py",
			Language:    "Python",
			Fingerprint: "abc123",
			SizeBytes:   120,
			Percentage:  45,
			AIGenerated: true,
			Confidence:  "full",
			Summary:     "Likely machine generated (45%).",
			Findings: []detect.Finding{
				{Category: detect.CategoryNaming, Score: 16, Explanation: "generic names"},
			},
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:         "r2",
			Language:   "Go",
			Percentage: 4,
			Summary:    "Likely human written (4%).",
			CreatedAt:  time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	archive, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(archive.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(archive.Records))
	}
	if archive.Version == "" || archive.ExportedAt.IsZero() {
		t.Error("archive metadata missing")
	}

	rec := archive.Records[0]
	if rec.ID != "r1" || !rec.AIGenerated || len(rec.Findings) != 1 {
		t.Errorf("record round-trip lost data: %+v", rec)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json.zst")

	if err := WriteFile(path, sampleRecords()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	archive, err := Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(archive.Records) != 2 {
		t.Errorf("records = %d", len(archive.Records))
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want just the export", len(entries))
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not a zstd stream"))); err == nil {
		t.Error("garbage input should fail to decode")
	}
}

func TestWriteEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	archive, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(archive.Records) != 0 {
		t.Errorf("records = %d, want 0", len(archive.Records))
	}
}
