package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestPrinter_Table(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Table([][]string{
		{"Code", "Type"},
		{"20001", "io/fs.PathError"},
	})
	assert.Contains(t, out.String(), "Code")
	assert.Contains(t, out.String(), "io/fs.PathError")

	out.Reset()
	p.TableBoxed([][]string{{"Kind", "URL"}, {"godoc", "https://pkg.go.dev/io/fs#PathError"}})
	assert.Contains(t, out.String(), "https://pkg.go.dev/io/fs#PathError")
}

func TestPrinter_TableEmpty(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.Table([][]string{})
	p.TableBoxed(nil)
	assert.Empty(t, out.String())
}

func TestPrinter_QuietMode(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.Quiet = true

	p.Section("codes")
	p.Info("loading")
	assert.Empty(t, out.String())

	p.Printf("value=%d\n", 1)
	assert.Equal(t, "value=1\n", out.String())

	out.Reset()
	p.Quiet = false
	p.Section("codes")
	p.Info("3 codes registered")
	assert.Equal(t, "codes\n3 codes registered\n", out.String())
}

func TestPrinter_Error(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).Error("lookup failed")
	assert.Contains(t, out.String(), "lookup failed")
}
