package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/labelprint/internal/prefs"
	"github.com/five82/labelprint/internal/printsvc"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
	return path
}

func TestRun_CLIPostsAndRemembersPrinter(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.toml", `
printers = "d304bc,e367bc"
pmb_url = "`+srv.URL+`"
template_id = 6
field_name = "cell_line"
field_date = "date"
warm_up = true
`)
	input := writeFile(t, dir, "rows.txt", "Alice\t2024-01-01\nBob\n\nCarol\t\n")
	prefsPath := filepath.Join(dir, "prefs.toml")

	var out, errOut bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  prefsPath,
		InputPath:  input,
		Printer:    "e367bc",
		Range:      "2-3",
		Out:        &out,
		ErrOut:     &errOut,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v\nlog: %s", err, errOut.String())
	}

	want := `{"data":{"attributes":{"printer_name":"e367bc","label_template_id":6,"labels":{"body":[{"label":{"cell_line":"","date":""}},{"label":{"cell_line":"Bob"}},{"label":{"cell_line":"Carol","date":""}}]}}}}`
	if string(got) != want {
		t.Fatalf("posted body = %s\nwant          %s", got, want)
	}
	if !strings.HasPrefix(out.String(), "Request sent. 3 label(s) to e367bc") {
		t.Fatalf("stdout = %q", out.String())
	}
	if p := prefs.Load(prefsPath); p.Printer != "e367bc" {
		t.Fatalf("remembered printer = %q, want e367bc", p.Printer)
	}
}

func TestRun_DryRunWritesGraphQLBody(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "layout.json", `{"barcodeFields":[{"value":"{barcode}"}],"textFields":[{"value":"{date}"}]}`)
	cfgPath := writeFile(t, dir, "config.toml", `
printers = ["d304bc"]
print_service = "http://sprint.example/graphql"
template_file = "layout.json"
`)
	input := writeFile(t, dir, "rows.txt", "X1\n")

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		InputPath:  input,
		DryRun:     true,
		Out:        &out,
		ErrOut:     io.Discard,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	body := strings.TrimSpace(out.String())
	if !strings.HasPrefix(body, `{"query":"mutation`) {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(body, `"printer":"d304bc"`) || !strings.Contains(body, `{"value":"null"}`) {
		t.Fatalf("body = %s, want printer and null date", body)
	}
}

func TestRun_ServiceErrorBecomesJobError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.toml", "printers = \"d304bc\"\npmb_url = \""+srv.URL+"\"\ntemplate_id = 1\nfield_name = \"n\"\n")
	input := writeFile(t, dir, "rows.txt", "A\n")

	err := Run(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		InputPath:  input,
		Out:        io.Discard,
		ErrOut:     io.Discard,
	})
	var jobErr *JobError
	if !errors.As(err, &jobErr) {
		t.Fatalf("Run error = %v, want *JobError", err)
	}
	if !errors.Is(err, printsvc.ErrServiceUnreachable) {
		t.Fatalf("Run error = %v, want ErrServiceUnreachable", err)
	}
	if !strings.HasPrefix(err.Error(), "There was an error when trying to print:") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		Out:        io.Discard,
		ErrOut:     io.Discard,
	})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config failure", err)
	}
}
