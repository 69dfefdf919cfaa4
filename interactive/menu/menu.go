package menu

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/errs"
	"github.com/Trinoooo/teledir/logs"
	"github.com/Trinoooo/teledir/utils"
	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

const menuText = `Telephone Directory Menu:
1. Insert an entry
2. Update an entry
3. Delete an entry
4. Exit
`

const (
	promptChoice        = "Enter your choice: "
	promptName          = "Enter the Name: "
	promptNumber        = "Enter the phoneNumber: "
	promptUpdateEntry   = "Enter the entry number to update: "
	promptUpdatedName   = "Enter Updated name: "
	promptUpdatedNumber = "Enter updated phoneNumber: "
	promptDeleteEntry   = "Enter entry number to delete: "

	msgInserted = "Entry inserted..."
	msgUpdated  = "Updated successfully..."
	msgDeleted  = "Entry deleted successfully."
	msgExiting  = "Exiting..."
	msgInvalid  = "Invalid operation."
)

var menuLogger = logs.Component(consts.ComponentMenu)

// errExit 读到EOF或中断，按退出处理
var errExit = errors.New("exit")

// LineReader 逐行读取用户输入，*readline.Instance 满足该接口
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Directory 菜单依赖的存储操作，*directory.Store 满足该接口
type Directory interface {
	Insert(name, number string) error
	Update(entry int, name, number string) error
	Delete(entry int) error
	Count() int
	Close() error
}

// Command 一次菜单操作收集到的输入
type Command struct {
	Choice consts.MenuChoice
	Entry  int
	Name   string
	Number string
}

type Menu struct {
	dir      Directory
	in       LineReader
	out      io.Writer
	color    bool
	handlers map[consts.MenuChoice]HandleFunc
	mws      []MiddlewareFunc
}

type Option func(m *Menu)

// WithColor 错误信息使用ANSI颜色输出
func WithColor(color bool) Option {
	return func(m *Menu) {
		m.color = color
	}
}

// WithMiddleware 追加中间件，按追加顺序由内向外包装handler
// 默认的 LogMw 和 RecoverMw 始终在最外层，自定义中间件里的panic同样会被捕获
func WithMiddleware(mws ...MiddlewareFunc) Option {
	return func(m *Menu) {
		m.mws = append(m.mws, mws...)
	}
}

func New(dir Directory, in LineReader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		dir:      dir,
		in:       in,
		out:      out,
		handlers: map[consts.MenuChoice]HandleFunc{},
	}
	m.withHandler(consts.MenuChoiceInsert, m.handleInsert)
	m.withHandler(consts.MenuChoiceUpdate, m.handleUpdate)
	m.withHandler(consts.MenuChoiceDelete, m.handleDelete)
	for _, opt := range opts {
		opt(m)
	}
	m.withMiddleware(LogMw, RecoverMw)
	return m
}

func (m *Menu) withHandler(choice consts.MenuChoice, handler HandleFunc) {
	m.handlers[choice] = handler
}

func (m *Menu) withMiddleware(mws ...MiddlewareFunc) {
	m.mws = append(m.mws, mws...)
}

// Run 菜单主循环，只有选择退出（或输入结束）时返回
func (m *Menu) Run() error {
	for {
		m.print(menuText)
		choice, err := m.readChoice()
		if errors.Is(err, errExit) {
			return m.exit()
		} else if err != nil {
			menuLogger.Error("read menu choice failed", zap.Error(err))
			m.printErr(err)
			m.println("")
			continue
		}

		switch choice {
		case consts.MenuChoiceInsert, consts.MenuChoiceUpdate, consts.MenuChoiceDelete:
			err = m.serve(choice)
		case consts.MenuChoiceExit:
			return m.exit()
		default:
			e := errs.NewUnsupportedChoiceErr()
			menuLogger.Debug(e.Error(), zap.Int64(consts.LogFieldValue, int64(choice)))
			m.printInvalid()
		}

		if errors.Is(err, errExit) {
			return m.exit()
		}
		m.println("")
	}
}

func (m *Menu) serve(choice consts.MenuChoice) error {
	cmd, err := m.collect(choice)
	if errors.Is(err, errExit) {
		return err
	} else if err != nil {
		m.printErr(err)
		return nil
	}

	handler := m.handlers[choice]
	for _, mw := range m.mws {
		handler = mw(handler)
	}

	if err = handler(cmd); err != nil {
		m.printErr(err)
		return nil
	}

	switch choice {
	case consts.MenuChoiceInsert:
		m.println(msgInserted)
	case consts.MenuChoiceUpdate:
		m.println(msgUpdated)
	case consts.MenuChoiceDelete:
		m.println(msgDeleted)
	}
	return nil
}

// collect 按选项依次提示并读取输入
func (m *Menu) collect(choice consts.MenuChoice) (*Command, error) {
	cmd := &Command{Choice: choice}
	var err error
	switch choice {
	case consts.MenuChoiceInsert:
		if cmd.Name, err = m.prompt(promptName); err != nil {
			return nil, err
		}
		if cmd.Number, err = m.prompt(promptNumber); err != nil {
			return nil, err
		}
	case consts.MenuChoiceUpdate:
		if cmd.Entry, err = m.promptEntry(promptUpdateEntry); err != nil {
			return nil, err
		}
		// 先确认编号存在，避免输入完新值才报错
		if cmd.Entry < 1 || cmd.Entry > m.dir.Count() {
			return nil, errs.NewEntryOutOfRangeErr()
		}
		if cmd.Name, err = m.prompt(promptUpdatedName); err != nil {
			return nil, err
		}
		if cmd.Number, err = m.prompt(promptUpdatedNumber); err != nil {
			return nil, err
		}
	case consts.MenuChoiceDelete:
		if cmd.Entry, err = m.promptEntry(promptDeleteEntry); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (m *Menu) exit() error {
	err := m.dir.Close()
	if err != nil {
		menuLogger.Error("close directory failed", zap.Error(err))
		m.printErr(err)
		return err
	}

	m.println(msgExiting)
	return nil
}

func (m *Menu) readChoice() (consts.MenuChoice, error) {
	line, err := m.prompt(promptChoice)
	if err != nil {
		return consts.MenuChoiceUnknown, err
	}

	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		menuLogger.Debug("parse menu choice failed", zap.String(consts.LogFieldValue, line), zap.Error(err))
		return consts.MenuChoiceUnknown, nil
	}
	return consts.MenuChoice(n), nil
}

func (m *Menu) promptEntry(prompt string) (int, error) {
	line, err := m.prompt(prompt)
	if err != nil {
		return 0, err
	}

	entry, err := strconv.Atoi(line)
	if err != nil {
		e := errs.NewParseIntErr().WithErr(err)
		menuLogger.Warn(e.Error(), zap.String(consts.LogFieldParams, "entry"), zap.String(consts.LogFieldValue, line))
		return 0, e
	}
	return entry, nil
}

func (m *Menu) prompt(prompt string) (string, error) {
	m.in.SetPrompt(prompt)
	line, err := m.in.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", errExit
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) print(s string) {
	_, _ = io.WriteString(m.out, s)
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *Menu) printErr(err error) {
	if m.color {
		m.println(utils.WrapError("%s", err))
		return
	}
	m.println(fmt.Sprintf("[ERROR] %s", err))
}

func (m *Menu) printInvalid() {
	if m.color {
		m.println(utils.WrapWarn("%s", msgInvalid))
		return
	}
	m.println(msgInvalid)
}
