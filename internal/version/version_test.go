package version

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = orig, origNoColor })
	color.NoColor = true

	cases := map[string]string{
		"0.1.0-dev":            "0.1.0-dev",
		"1.2.3":                "1.2.3",
		"1.2.3-rc.1+build.123": "1.2.3-rc.1+build.123",
		"nightly":              "nightly",
		"  ":                   "dev",
	}
	for in, want := range cases {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColoredWrapsEachNumber(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = orig, origNoColor })
	color.NoColor = false

	Version = "1.2.3-dev"
	want := color.New(color.FgYellow, color.Bold).Sprint("1") + "." +
		color.New(color.FgGreen, color.Bold).Sprint("2") + "." +
		color.New(color.FgBlue, color.Bold).Sprint("3") + "-dev"
	got := Colored()
	if got != want {
		t.Fatalf("Colored() = %q, want %q", got, want)
	}
	if os.Getenv("NO_COLOR") == "" && !strings.HasPrefix(got, "\x1b[33;1m1") {
		t.Fatalf("Colored() = %q, major is not yellow bold", got)
	}
}

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}
