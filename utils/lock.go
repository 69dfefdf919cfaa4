package utils

import "sync"

func WrapLock(lock *sync.Mutex, fn func()) {
	lock.Lock()
	defer lock.Unlock()

	fn()
}

// WrapLockErr 同 WrapLock，透传fn的错误
func WrapLockErr(lock *sync.Mutex, fn func() error) error {
	lock.Lock()
	defer lock.Unlock()

	return fn()
}
