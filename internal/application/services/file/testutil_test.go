package file

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/easayliu/normname/internal/domain/services/filename"
	"github.com/easayliu/normname/internal/domain/services/group"
)

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	idx, err := group.NewIndex(group.DefaultTable())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return NewPlanner(filename.NewBuilder(idx))
}

// touch 创建文件（含父目录）
func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// listNames 递归列出 root 下的文件（相对路径，斜杠分隔，排除锁文件）
func listNames(t *testing.T, root string) []string {
	t.Helper()
	var names []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || info.Name() == ".normname.lock" {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
