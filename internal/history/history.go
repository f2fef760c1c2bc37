package history

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"sync"
)

type History struct {
	items    []string
	file     string
	maxItems int
	mu       sync.Mutex
}

// New loads the history stored in file. An empty file name keeps the history
// in memory only.
func New(file string, maxItems int) (*History, error) {
	h := &History{
		file:     file,
		maxItems: maxItems,
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *History) Add(item string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, item)
	h.trim()
}

func (h *History) GetAll() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string{}, h.items...)
}

// Save writes the history back to its file.
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == "" {
		return nil
	}

	file, err := os.OpenFile(h.file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (h *History) trim() {
	if h.maxItems > 0 && len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
}

func (h *History) load() error {
	if h.file == "" {
		return nil
	}

	file, err := os.Open(h.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			h.items = append(h.items, line)
		}
	}
	h.trim()
	return scanner.Err()
}
