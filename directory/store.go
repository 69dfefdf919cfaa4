package directory

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/directory/logs"
	"github.com/Trinoooo/teledir/errs"
	"github.com/Trinoooo/teledir/utils"
	"go.uber.org/zap"
)

const (
	opInitialize = "initialize"
	opInsert     = "insert"
	opUpdate     = "update"
	opDelete     = "delete"
	opLoad       = "load"
)

// openFile 重写后重新打开数据文件
var openFile = os.OpenFile

// Store 电话簿文件存储
// 整个生命周期只持有一个读写句柄，所有操作在 mu 保护下串行执行。
// 记录条数以 index 为准，对外编号从1开始，内部统一换算成 index 下标。
type Store struct {
	mu    sync.Mutex
	opts  *Options
	path  string   // path 数据文件路径
	fd    *os.File // fd 数据文件句柄
	index []*lpos  // index 每条数据行的位置，不含表头
	size  int64    // size 文件当前长度

	closed bool
}

// Open 创建或截断数据文件并写入表头，之前的内容全部丢弃
func Open(path string, opts *Options) (*Store, error) {
	if opts != nil && opts.readOnly {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "readOnly"), zap.String(consts.LogFieldPath, path))
		return nil, e
	}

	s, err := newStore(path, opts, os.O_RDWR|os.O_CREATE)
	if err != nil {
		return nil, err
	}

	if err = s.Initialize(); err != nil {
		_ = s.fd.Close()
		return nil, err
	}

	logs.Info("directory opened", zap.String(consts.LogFieldPath, path))
	return s, nil
}

// Load 打开已有的数据文件，不截断，根据文件内容重建索引
// opts.readOnly 为true时以只读方式打开
func Load(path string, opts *Options) (*Store, error) {
	flag := os.O_RDWR
	if opts != nil && opts.readOnly {
		flag = os.O_RDONLY
	}

	s, err := newStore(path, opts, flag)
	if err != nil {
		return nil, err
	}

	err = s.reload()
	s.opts.observer.ObserveOp(opLoad, err)
	if err != nil {
		_ = s.fd.Close()
		return nil, err
	}

	s.opts.observer.SetRecords(len(s.index))
	logs.Info("directory loaded", zap.String(consts.LogFieldPath, path), zap.Int(consts.LogFieldValue, len(s.index)))
	return s, nil
}

func newStore(path string, opts *Options, flag int) (*Store, error) {
	if opts == nil {
		opts = NewOptions()
	}

	if err := opts.check(); err != nil {
		return nil, err
	}

	if path == "" {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "path"), zap.String(consts.LogFieldValue, path))
		return nil, e
	}

	fd, err := utils.CheckAndCreateFileWithDirPerm(path, flag, opts.dataPerm, opts.dirPerm)
	if err != nil {
		logs.Error("open directory file failed", zap.String(consts.LogFieldPath, path), zap.Error(err))
		return nil, err
	}

	return &Store{
		opts: opts,
		path: path,
		fd:   fd,
	}, nil
}

// Initialize 截断文件，只保留表头
// 重复调用总是把文件恢复到只有表头的状态
func (s *Store) Initialize() error {
	return s.do(opInitialize, func() error {
		if err := s.fd.Truncate(0); err != nil {
			return errs.NewTruncateFileErr().WithErr(err)
		}

		if _, err := s.fd.WriteAt([]byte(consts.Header), 0); err != nil {
			return errs.NewWriteFileErr().WithErr(err)
		}

		s.index = s.index[:0]
		s.size = int64(len(consts.Header))
		return s.maybeSync()
	})
}

// Insert 在文件末尾追加一条记录，不检查重复
func (s *Store) Insert(name, number string) error {
	return s.do(opInsert, func() error {
		r, err := NewRecord(name, number)
		if err != nil {
			return err
		}

		b := r.marshal()
		if _, err = s.fd.WriteAt(b, s.size); err != nil {
			return errs.NewWriteFileErr().WithErr(err)
		}

		s.index = append(s.index, &lpos{
			start: s.size,
			end:   s.size + int64(len(b)),
		})
		s.size += int64(len(b))
		return s.maybeSync()
	})
}

// Update 覆盖第entry条记录（从1开始）
// 新旧行长度相同时原地覆盖，否则整体重写文件
func (s *Store) Update(entry int, name, number string) error {
	return s.do(opUpdate, func() error {
		slot, err := s.slot(entry)
		if err != nil {
			return err
		}

		r, err := NewRecord(name, number)
		if err != nil {
			return err
		}

		b := r.marshal()
		pos := s.index[slot]
		if int64(len(b)) != pos.length() {
			return s.rewrite(slot, b)
		}

		if _, err = s.fd.WriteAt(b, pos.start); err != nil {
			return errs.NewWriteFileErr().WithErr(err)
		}
		return s.maybeSync()
	})
}

// Delete 删除第entry条记录（从1开始）
// entry不存在时返回 EntryOutOfRange，文件保持不变
func (s *Store) Delete(entry int) error {
	return s.do(opDelete, func() error {
		slot, err := s.slot(entry)
		if err != nil {
			return err
		}
		return s.rewrite(slot, nil)
	})
}

// Get 读取第entry条记录（从1开始）
func (s *Store) Get(entry int) (*Record, error) {
	var r *Record
	err := utils.WrapLockErr(&s.mu, func() error {
		if s.closed {
			return errs.NewFileClosedErr()
		}

		slot, err := s.slot(entry)
		if err != nil {
			return err
		}

		r, err = s.read(s.index[slot])
		return err
	})
	return r, err
}

// Entries 按文件顺序读取全部记录
func (s *Store) Entries() ([]*Record, error) {
	var records []*Record
	err := utils.WrapLockErr(&s.mu, func() error {
		if s.closed {
			return errs.NewFileClosedErr()
		}

		records = make([]*Record, 0, len(s.index))
		for _, pos := range s.index {
			r, err := s.read(pos)
			if err != nil {
				return err
			}
			records = append(records, r)
		}
		return nil
	})
	return records, err
}

// Count 当前记录条数，唯一可信的计数
func (s *Store) Count() int {
	var n int
	utils.WrapLock(&s.mu, func() {
		n = len(s.index)
	})
	return n
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return utils.WrapLockErr(&s.mu, func() error {
		if s.closed {
			return errs.NewFileClosedErr()
		}

		if !s.opts.readOnly {
			if err := s.fd.Sync(); err != nil {
				return errs.NewSyncFileErr().WithErr(err)
			}
		}

		if err := s.fd.Close(); err != nil {
			return errs.NewCloseFileErr().WithErr(err)
		}

		s.closed = true
		s.index = nil
		logs.Info("directory closed", zap.String(consts.LogFieldPath, s.path))
		return nil
	})
}

// do 加锁执行修改类操作，统一处理关闭检查、日志和指标上报
func (s *Store) do(op string, fn func() error) error {
	return utils.WrapLockErr(&s.mu, func() error {
		var err error
		switch {
		case s.closed:
			err = errs.NewFileClosedErr()
		case s.opts.readOnly:
			err = errs.NewReadOnlyErr()
		default:
			err = fn()
		}

		s.opts.observer.ObserveOp(op, err)
		if err != nil {
			logs.Error("directory operation failed", zap.String(consts.LogFieldOp, op), zap.Error(err))
			return err
		}

		s.opts.observer.SetRecords(len(s.index))
		logs.Debug("directory operation done", zap.String(consts.LogFieldOp, op), zap.Int(consts.LogFieldValue, len(s.index)))
		return nil
	})
}

// slot 对外编号 -> index 下标，唯一的换算点
func (s *Store) slot(entry int) (int, error) {
	if entry < 1 || entry > len(s.index) {
		e := errs.NewEntryOutOfRangeErr()
		logs.Warn(e.Error(), zap.Int(consts.LogFieldEntry, entry), zap.Int(consts.LogFieldValue, len(s.index)))
		return 0, e
	}
	return entry - 1, nil
}

func (s *Store) read(pos *lpos) (*Record, error) {
	buf := make([]byte, pos.length())
	if _, err := s.fd.ReadAt(buf, pos.start); err != nil {
		return nil, errs.NewReadFileErr().WithErr(err)
	}

	r := &Record{}
	if err := r.unmarshal(buf); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) maybeSync() error {
	if !s.opts.sync {
		return nil
	}

	if err := s.fd.Sync(); err != nil {
		return errs.NewSyncFileErr().WithErr(err)
	}
	return nil
}

// reload 从当前句柄重建索引
func (s *Store) reload() error {
	stat, err := s.fd.Stat()
	if err != nil {
		return errs.NewFileStatErr().WithErr(err)
	}

	index, size, err := loadIndex(io.NewSectionReader(s.fd, 0, stat.Size()))
	if err != nil {
		return err
	}

	s.index = index
	s.size = size
	return nil
}

// rewrite 逐行拷贝到同目录下的临时文件，跳过第slot条数据行，
// replacement 不为空时用它替换该行，然后用临时文件原子替换数据文件。
// rename 之前任何一步失败，原数据文件和句柄保持不变。
func (s *Store) rewrite(slot int, replacement []byte) (err error) {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return errs.NewCreateTempFileErr().WithErr(err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tmp.Close()
		if e := os.Remove(tmp.Name()); e != nil && !errors.Is(e, os.ErrNotExist) {
			re := errs.NewRemoveFileErr().WithErr(e)
			logs.Warn(re.Error(), zap.String(consts.LogFieldPath, tmp.Name()))
		}
	}()

	if err = s.copyLines(tmp, slot, replacement); err != nil {
		return err
	}

	if err = tmp.Chmod(s.opts.dataPerm); err != nil {
		return errs.NewWriteFileErr().WithErr(err)
	}

	if err = tmp.Sync(); err != nil {
		return errs.NewSyncFileErr().WithErr(err)
	}

	if err = tmp.Close(); err != nil {
		return errs.NewCloseFileErr().WithErr(err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errs.NewRenameFileErr().WithErr(err)
	}
	committed = true

	// 数据文件已经被替换，切换到新文件的句柄
	// 打开失败时旧句柄指向已被替换的文件，不能继续写，直接关闭存储
	fd, err := openFile(s.path, os.O_RDWR, s.opts.dataPerm)
	if err != nil {
		_ = s.fd.Close()
		s.closed = true
		s.index = nil
		e := errs.NewOpenFileErr().WithErr(err)
		logs.Error("reopen after rewrite failed, directory closed", zap.String(consts.LogFieldPath, s.path), zap.Error(e))
		return e
	}

	old := s.fd
	s.fd = fd
	if e := old.Close(); e != nil {
		logs.Warn("close replaced file failed", zap.String(consts.LogFieldPath, s.path), zap.Error(e))
	}

	return s.reload()
}

func (s *Store) copyLines(dst io.Writer, slot int, replacement []byte) error {
	w := bufio.NewWriter(dst)
	src := io.NewSectionReader(s.fd, 0, s.size)

	headerEnd := s.size
	if len(s.index) > 0 {
		headerEnd = s.index[0].start
	}
	if _, err := io.Copy(w, io.NewSectionReader(src, 0, headerEnd)); err != nil {
		return errs.NewWriteFileErr().WithErr(err)
	}

	for i, pos := range s.index {
		if i == slot {
			if _, err := w.Write(replacement); err != nil {
				return errs.NewWriteFileErr().WithErr(err)
			}
			continue
		}

		if _, err := io.Copy(w, io.NewSectionReader(src, pos.start, pos.length())); err != nil {
			return errs.NewWriteFileErr().WithErr(err)
		}
	}

	if err := w.Flush(); err != nil {
		return errs.NewWriteFileErr().WithErr(err)
	}
	return nil
}
