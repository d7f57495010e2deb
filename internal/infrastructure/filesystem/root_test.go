package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "存在的目录", path: dir, want: dir},
		{name: "带多余分隔符", path: dir + string(filepath.Separator) + ".", want: dir},
		{name: "不存在", path: filepath.Join(dir, "missing"), wantErr: true},
		{name: "是文件", path: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRoot(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRoot) {
					t.Fatalf("ResolveRoot(%q) error = %v, want ErrInvalidRoot", tt.path, err)
				}
				var pve *PathValidationError
				if !errors.As(err, &pve) {
					t.Errorf("error is not *PathValidationError: %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRoot(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ResolveRoot(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveRoot_EmptyIsWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ResolveRoot("")
	if err != nil {
		t.Fatalf("ResolveRoot(\"\") error = %v", err)
	}
	if got != wd {
		t.Errorf("ResolveRoot(\"\") = %q, want %q", got, wd)
	}
}

func TestExpandPath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/photos")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != filepath.Join(home, "photos") {
		t.Errorf("ExpandPath() = %q", got)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "普通文件名", input: "1-1_小米15_第三个点.jpg"},
		{name: "空", input: "", wantErr: true},
		{name: "控制字符", input: "a\x01b.jpg", wantErr: true},
		{name: "零宽字符", input: "a\u200bb.jpg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLockRoot(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockRoot(dir)
	if err != nil {
		t.Fatalf("LockRoot() error = %v", err)
	}
	if !IsLockFile(filepath.Base(lock.Path())) {
		t.Errorf("lock path %q is not recognised as a lock file", lock.Path())
	}

	acquired := make(chan struct{})
	go func() {
		second, err := LockRoot(dir)
		if err != nil {
			t.Errorf("second LockRoot() error = %v", err)
			close(acquired)
			return
		}
		close(acquired)
		_ = second.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(100 * time.Millisecond):
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}

	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second lock not acquired after unlock")
	}

	// 重复释放无副作用
	if err := lock.Unlock(); err != nil {
		t.Errorf("second Unlock() error = %v", err)
	}
}
