package history

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func pushAll(t *testing.T, b *Buffer, entries ...string) {
	t.Helper()
	for _, e := range entries {
		if err := b.Push(e); err != nil {
			t.Fatalf("Push(%q) error = %v", e, err)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		opts     []Option
		wantErr  error
	}{
		{name: "memory only", capacity: 3},
		{name: "zero capacity", capacity: 0},
		{name: "negative capacity", capacity: -1, wantErr: ErrInvalidCapacity},
		{
			name:     "empty separator",
			capacity: 1,
			opts:     []Option{WithSeparator("")},
			wantErr:  ErrEmptySeparator,
		},
		{
			name:     "blank path",
			capacity: 1,
			opts:     []Option{WithFile("  ")},
			wantErr:  ErrInvalidPath,
		},
		{
			name:     "path with NUL",
			capacity: 1,
			opts:     []Option{WithFile("a\x00b")},
			wantErr:  ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				_, err := New(tt.capacity, tt.opts...)
				if tt.wantErr == nil && err != nil {
					t.Fatalf("New() error = %v", err)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
			},
		)
	}
}

func TestBuffer_MemoryOnly(t *testing.T) {
	for _, c := range []int{0, 1, 2, 5} {
		t.Run(
			fmt.Sprintf("capacity %d", c), func(t *testing.T) {
				b, err := New(c)
				if err != nil {
					t.Fatal(err)
				}

				var pushed []string
				for i := range c + 3 {
					e := fmt.Sprintf("entry %d", i)
					pushed = append(pushed, e)
					pushAll(t, b, e)
				}

				want := pushed[len(pushed)-c:]
				if c == 0 {
					want = []string{}
				}

				if got := b.Latest(); !reflect.DeepEqual(got, want) {
					t.Errorf("Latest() = %v, want %v", got, want)
				}
			},
		)
	}
}

func TestBuffer_Get(t *testing.T) {
	b, err := New(2)
	if err != nil {
		t.Fatal(err)
	}

	pushAll(t, b, "a", "b", "c")

	tests := []struct {
		name      string
		maxLength int
		want      []string
		wantErr   bool
	}{
		{name: "capacity", maxLength: 2, want: []string{"b", "c"}},
		{name: "one", maxLength: 1, want: []string{"c"}},
		{name: "clamped without file", maxLength: 5, want: []string{"b", "c"}},
		{name: "zero", maxLength: 0, want: []string{}},
		{name: "negative", maxLength: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				got, err := b.Get(tt.maxLength)
				if (err != nil) != tt.wantErr {
					t.Fatalf("Get() error = %v, wantErr %v", err, tt.wantErr)
				}
				if tt.wantErr {
					if !errors.Is(err, ErrInvalidLength) {
						t.Errorf("Get() error = %v, want ErrInvalidLength", err)
					}
					return
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("Get(%d) = %v, want %v", tt.maxLength, got, tt.want)
				}
			},
		)
	}
}

func TestBuffer_ReloadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.txt")

	b, err := New(3, WithFile(path))
	if err != nil {
		t.Fatal(err)
	}

	pushAll(t, b, "e1", "e2", "e3", "e4", "e5")

	reloaded, err := New(3, WithFile(path))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"e3", "e4", "e5"}
	if got := reloaded.Latest(); !reflect.DeepEqual(got, want) {
		t.Errorf("Latest() after reload = %v, want %v", got, want)
	}

	// Requests beyond the window read through to the file, including
	// entries evicted from memory.

	got, err := reloaded.Get(4)
	if err != nil {
		t.Fatal(err)
	}
	if want = []string{"e2", "e3", "e4", "e5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Get(4) = %v, want %v", got, want)
	}

	got, _ = reloaded.Get(50)
	if want = []string{"e1", "e2", "e3", "e4", "e5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Get(50) = %v, want %v", got, want)
	}

	// Reading through must not refresh the in-memory window.

	if reloaded.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reloaded.Len())
	}
}

func TestBuffer_ZeroCapacityStillPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	b, err := New(0, WithFile(path))
	if err != nil {
		t.Fatal(err)
	}

	pushAll(t, b, "x", "y")

	if got := b.Latest(); len(got) != 0 {
		t.Errorf("Latest() = %v, want empty", got)
	}

	got, err := b.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Get(2) = %v, want %v", got, want)
	}
}

func TestBuffer_PushSeparatorCollision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	b, err := New(3, WithFile(path), WithSeparator("|"))
	if err != nil {
		t.Fatal(err)
	}

	pushAll(t, b, "ok")

	err = b.Push("not|ok")
	if !errors.Is(err, ErrContainsSeparator) {
		t.Fatalf("Push() error = %v, want ErrContainsSeparator", err)
	}

	if got := b.Latest(); !reflect.DeepEqual(got, []string{"ok"}) {
		t.Errorf("Latest() = %v, want [ok]", got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "|ok" {
		t.Errorf("file contents = %q, want %q", raw, "|ok")
	}
}

func TestBuffer_SeparatorAllowedWithoutFile(t *testing.T) {
	b, err := New(1, WithSeparator("|"))
	if err != nil {
		t.Fatal(err)
	}

	pushAll(t, b, "a|b")

	if got := b.Latest(); !reflect.DeepEqual(got, []string{"a|b"}) {
		t.Errorf("Latest() = %v, want [a|b]", got)
	}
}

func TestBuffer_GetZeroDoesNotTouchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")

	b, err := New(2, WithFile(path))
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.Get(0)
	if err != nil || len(got) != 0 {
		t.Errorf("Get(0) = %v, %v; want empty, nil", got, err)
	}

	if _, err = os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("history file should not exist yet, stat error = %v", err)
	}
}

func TestBuffer_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")

	b, err := New(4, WithFile(path))
	if err != nil {
		t.Fatal(err)
	}

	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}

	got, err := b.Get(3)
	if err != nil || len(got) != 0 {
		t.Errorf("Get(3) = %v, %v; want empty, nil", got, err)
	}
}
