package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// LockFileName 每个扫描根目录下的跨进程锁文件名
const LockFileName = ".normname.lock"

// RootLock 根目录上的独占锁，保证同一目录同时只有一个重命名批次在执行
type RootLock struct {
	file *lockedfile.File
	path string
}

// IsLockFile 判断文件名是否为锁文件
func IsLockFile(name string) bool {
	return name == LockFileName
}

// LockRoot 获取根目录锁，若其他进程持有则阻塞等待
func LockRoot(root string) (*RootLock, error) {
	lockPath := filepath.Join(root, LockFileName)

	file, err := lockedfile.Create(lockPath)
	if err != nil {
		return nil, fmt.Errorf("create lock file error: %w", err)
	}

	if _, err := file.Write([]byte(strconv.Itoa(os.Getpid()))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write lock file error: %w", err)
	}

	return &RootLock{file: file, path: lockPath}, nil
}

// Path 锁文件路径
func (l *RootLock) Path() string {
	return l.path
}

// Unlock 释放锁；锁文件保留在原处供下次复用
func (l *RootLock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
