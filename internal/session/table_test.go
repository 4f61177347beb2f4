package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"posekit/internal/session"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return path
}

func TestReadTableBuildsRegistry(t *testing.T) {
	path := writeTable(t, "id,path,subject,condition\n0,s0.npy,m1,baseline\n1,s1.npy,m2,treated\n")

	reg, err := session.ReadTable(path, session.TableOptions{})
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", reg.Len())
	}
	cols := reg.Columns()
	if len(cols) != 2 || cols[0] != "subject" || cols[1] != "condition" {
		t.Fatalf("unexpected attribute columns: %v", cols)
	}
	attrs, err := reg.Lookup(1)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if v, _ := attrs.Get("subject"); v != "m2" {
		t.Fatalf("unexpected subject: %q", v)
	}
}

func TestReadTableHonorsColumnAndDelimiterOptions(t *testing.T) {
	path := writeTable(t, "session;file;sex\n7;s7.npy;f\n")

	reg, err := session.ReadTable(path, session.TableOptions{
		Delimiter:  ';',
		IDColumn:   "session",
		PathColumn: "file",
	})
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	p, err := reg.PathFor(7)
	if err != nil {
		t.Fatalf("PathFor failed: %v", err)
	}
	if p != "s7.npy" {
		t.Fatalf("unexpected path: %q", p)
	}
}

func TestReadTableRequiresIDColumn(t *testing.T) {
	path := writeTable(t, "path,subject\ns0.npy,m1\n")
	_, err := session.ReadTable(path, session.TableOptions{})
	if !errors.Is(err, session.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestReadTableRejectsDuplicateIDs(t *testing.T) {
	path := writeTable(t, "id,path\n0,a.npy\n0,b.npy\n")
	_, err := session.ReadTable(path, session.TableOptions{})
	if !errors.Is(err, session.ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}
}

func TestReadTableRejectsNonIntegerID(t *testing.T) {
	path := writeTable(t, "id,path\nsession-zero,a.npy\n")
	if _, err := session.ReadTable(path, session.TableOptions{}); err == nil {
		t.Fatal("expected error for non-integer id")
	}
}
