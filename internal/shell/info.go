package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"
	"time"
	"unicode"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

const (
	bootTimeLayout = "2006-01-02 15:04:05"
	blockSize      = 512
	notAvailable   = "N/A"
)

func (s *Shell) sysinfo(ctx context.Context) error {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return fmt.Errorf("uname failed: %w", err)
	}
	boot, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return fmt.Errorf("boot time unavailable: %w", err)
	}

	fmt.Fprintf(s.stdout, "System: %s\n", unix.ByteSliceToString(uts.Sysname[:]))
	fmt.Fprintf(s.stdout, "Hostname: %s\n", unix.ByteSliceToString(uts.Nodename[:]))
	fmt.Fprintf(s.stdout, "Kernel: %s\n", unix.ByteSliceToString(uts.Release[:]))
	fmt.Fprintf(s.stdout, "Architecture: %s\n", unix.ByteSliceToString(uts.Machine[:]))
	fmt.Fprintf(s.stdout, "Boot Time: %s\n", time.Unix(int64(boot), 0).Local().Format(bootTimeLayout))
	return nil
}

// diskUsage prints the allocated size of a tree in kilobytes, rounded up.
// Symbolic links are neither followed nor counted.
func (s *Shell) diskUsage(args []string) error {
	if len(args) > 1 {
		return errTooManyArguments
	}
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	total, err := usage(s.fs, root)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.stdout, "Total disk usage: %d KB\n", (total+1023)/1024)
	return nil
}

// usage returns the bytes allocated under path. Entries that cannot be read
// below the root are skipped.
func usage(fsys afero.Fs, path string) (uint64, error) {
	info, err := lstat(fsys, path)
	if err != nil {
		return 0, fmt.Errorf("lstat failed: %w", err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return 0, nil
	}

	total := allocated(info)
	if !info.IsDir() {
		return total, nil
	}

	entries, err := afero.ReadDir(fsys, path)
	if err != nil {
		return total, fmt.Errorf("opendir failed: %w", err)
	}
	for _, entry := range entries {
		n, _ := usage(fsys, filepath.Join(path, entry.Name()))
		total += n
	}
	return total, nil
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// allocated is the block count times 512 when the filesystem reports it.
// Otherwise regular files are rounded up to whole blocks.
func allocated(info os.FileInfo) uint64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Blocks) * blockSize
	}
	if info.IsDir() || info.Size() <= 0 {
		return 0
	}
	return (uint64(info.Size()) + blockSize - 1) / blockSize * blockSize
}

func (s *Shell) whoami() error {
	uid, gid := os.Getuid(), os.Getgid()
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return fmt.Errorf("getpwuid failed: %w", err)
	}
	fmt.Fprintln(s.stdout, uid)
	fmt.Fprintln(s.stdout, gid)
	fmt.Fprintf(s.stdout, "%s %s\n", u.Username, u.HomeDir)
	return nil
}

type usbDevice struct {
	devnum       int
	vendor       string
	product      string
	manufacturer string
	name         string
	maxPower     string
}

// usbinfo lists the devices under the sysfs USB directory that carry a
// positive device number, ordered by that number.
func (s *Shell) usbinfo() error {
	dir := s.config.USBDevicesDir
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", dir, err)
	}

	var devices []usbDevice
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		raw, ok := firstLine(s.fs, filepath.Join(path, "devnum"))
		if !ok {
			continue
		}
		devnum, err := strconv.Atoi(raw)
		if err != nil || devnum <= 0 {
			continue
		}
		devices = append(devices, usbDevice{
			devnum:       devnum,
			vendor:       attribute(s.fs, path, "idVendor"),
			product:      attribute(s.fs, path, "idProduct"),
			manufacturer: attribute(s.fs, path, "manufacturer"),
			name:         attribute(s.fs, path, "product"),
			maxPower:     maxPower(s.fs, path),
		})
	}
	if len(devices) == 0 {
		return errors.New("no USB devices found")
	}

	slices.SortStableFunc(devices, func(a, b usbDevice) int {
		return a.devnum - b.devnum
	})
	for _, d := range devices {
		fmt.Fprintf(s.stdout, "Device %d: ID %s:%s %s %s MaxPower: %s\n",
			d.devnum, d.vendor, d.product, d.manufacturer, d.name, d.maxPower)
	}
	return nil
}

func attribute(fsys afero.Fs, dir, name string) string {
	if v, ok := firstLine(fsys, filepath.Join(dir, name)); ok {
		return v
	}
	return notAvailable
}

// maxPower reads bMaxPower, falling back to power/max_power, and keeps only
// the digits.
func maxPower(fsys afero.Fs, dir string) string {
	raw, ok := firstLine(fsys, filepath.Join(dir, "bMaxPower"))
	if !ok {
		raw, ok = firstLine(fsys, filepath.Join(dir, "power", "max_power"))
	}
	if !ok {
		return notAvailable
	}
	digits := lo.Filter([]rune(raw), func(r rune, _ int) bool {
		return unicode.IsDigit(r)
	})
	if len(digits) == 0 {
		return notAvailable
	}
	return string(digits) + "mA"
}

// firstLine returns the trimmed first line of a file, and false when the file
// is missing or that line is empty.
func firstLine(fsys afero.Fs, path string) (string, bool) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", false
	}
	line, _, _ := bytes.Cut(data, []byte("\n"))
	v := string(bytes.TrimSpace(line))
	return v, v != ""
}
