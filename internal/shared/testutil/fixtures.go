package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// DTA fixtures shipped in testdata/.
const (
	CVFixture              = "cv_data.dta"
	CVIncompleteHeader     = "cv_data_incompleteheader.dta"
	CVUnitMismatchFixture  = "cv_data_unitmismatch.dta"
	CVWrongUnitFixture     = "cv_data_wrongunit.dta"
	CVUnknownPrefixFixture = "cv_data_unknownprefix.dta"
	ChronoAFixture         = "chronoa_data.dta"
	ChronoACommaFixture    = "chronoa_de_data.dta"
	EISFixture             = "eispot_data.dta"
	EISAbortedFixture      = "eispot_data_curveaborted.dta"
	OCPFixture             = "ocp_data.dta"
	LegacyOCVCurveFixture  = "ocvcurve_data.dta"
	SquareWaveFixture      = "squarewave_data.dta"
	VFP600Fixture          = "vfp600_data.dta"
)

// FixtureDir returns the absolute path of the testdata directory.
func FixtureDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata")
}

// FixturePath returns the absolute path of a named fixture.
func FixturePath(name string) string {
	return filepath.Join(FixtureDir(), name)
}

// WriteDTA writes content to a file in a per-test temp directory and
// returns its path.
func WriteDTA(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// CopyFixtures copies the named fixtures into a fresh temp directory, for
// tests that scan a directory.
func CopyFixtures(t testing.TB, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		data, err := os.ReadFile(FixturePath(name))
		if err != nil {
			t.Fatalf("read fixture %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("copy fixture %s: %v", name, err)
		}
	}
	return dir
}
