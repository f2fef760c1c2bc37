package shell

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smash/internal/config"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestSysinfo(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	execute(t, sh, "sysinfo")
	require.Empty(t, errOut.String())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	for i, label := range []string{"System: ", "Hostname: ", "Kernel: ", "Architecture: ", "Boot Time: "} {
		assert.True(t, strings.HasPrefix(lines[i], label), lines[i])
	}
	assert.Equal(t, "System: Linux", lines[0])
	assert.Regexp(t, `^Boot Time: \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, lines[4])
}

func TestDiskUsage(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/data/a":         strings.Repeat("x", 100),
		"/data/sub/b":     strings.Repeat("x", 1000),
		"/data/sub/empty": "",
	})
	sh, out, errOut := newTestShell(t, WithFs(fs))

	execute(t, sh, "du /data")
	assert.Equal(t, "Total disk usage: 2 KB\n", out.String())
	out.Reset()

	execute(t, sh, "du /data/a")
	assert.Equal(t, "Total disk usage: 1 KB\n", out.String())
	out.Reset()

	execute(t, sh, "du /data/sub/empty")
	assert.Equal(t, "Total disk usage: 0 KB\n", out.String())
	assert.Empty(t, errOut.String())

	execute(t, sh, "du /data /data")
	assert.Equal(t, "smash error: du: too many arguments\n", errOut.String())
	errOut.Reset()

	execute(t, sh, "du /missing")
	assert.True(t, strings.HasPrefix(errOut.String(), "smash error: du: lstat failed: "))
}

func TestDiskUsageSkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("data"), 0o644))
	sh, out, _ := newTestShell(t)

	execute(t, sh, "du "+dir)
	before := out.String()
	out.Reset()

	require.NoError(t, os.Symlink(filepath.Join(dir, "file"), filepath.Join(dir, "link")))
	execute(t, sh, "du "+dir)
	assert.Equal(t, before, out.String())

	execute(t, sh, "du "+filepath.Join(dir, "link"))
	assert.Contains(t, out.String(), "Total disk usage: 0 KB\n")
}

func TestWhoami(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	execute(t, sh, "whoami")
	require.Empty(t, errOut.String())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strconv.Itoa(os.Getuid()), lines[0])
	assert.Equal(t, strconv.Itoa(os.Getgid()), lines[1])
	assert.Len(t, strings.Fields(lines[2]), 2)
}

func TestUSBInfo(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := config.DefaultUSBDir
	writeFiles(t, fs, map[string]string{
		root + "/1-1/devnum":       "3\n",
		root + "/1-1/idVendor":     "046d\n",
		root + "/1-1/idProduct":    "c52b\n",
		root + "/1-1/manufacturer": "Logitech\n",
		root + "/1-1/product":      "USB Receiver\n",
		root + "/1-1/bMaxPower":    "98mA\n",

		root + "/usb1/devnum":       "1\n",
		root + "/usb1/idVendor":     "1d6b\n",
		root + "/usb1/idProduct":    "0002\n",
		root + "/usb1/manufacturer": "Linux Foundation\n",
		root + "/usb1/product":      "2.0 root hub\n",
		root + "/usb1/bMaxPower":    "0mA\n",

		root + "/1-2/devnum":          "2\n",
		root + "/1-2/idVendor":        "0bda\n",
		root + "/1-2/manufacturer":    "\n",
		root + "/1-2/power/max_power": "500mA\n",

		root + "/1-1:1.0/bInterfaceClass": "03\n",
		root + "/1-3/devnum":              "0\n",
		root + "/1-4/devnum":              "abc\n",
		root + "/1-5/devnum":              "4\n",
		root + "/1-5/bMaxPower":           "unknown\n",
	})
	sh, out, errOut := newTestShell(t, WithFs(fs))

	execute(t, sh, "usbinfo")
	require.Empty(t, errOut.String())

	g := goldie.New(t)
	g.Assert(t, "usbinfo", out.Bytes())
}

func TestUSBInfoEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	sh, out, errOut := newTestShell(t, WithFs(fs))

	execute(t, sh, "usbinfo")
	assert.True(t, strings.HasPrefix(errOut.String(), "smash error: usbinfo: cannot read "+config.DefaultUSBDir))
	errOut.Reset()

	require.NoError(t, fs.MkdirAll(config.DefaultUSBDir+"/1-1:1.0", 0o755))
	execute(t, sh, "usbinfo")
	assert.Equal(t, "smash error: usbinfo: no USB devices found\n", errOut.String())
	assert.Empty(t, out.String())
}
