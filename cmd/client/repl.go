package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/syncer"
)

// engine is the part of *syncer.Engine the REPL drives.
type engine interface {
	Load(month schedule.MonthKey) error
	Edit(date string, employee domain.Employee, u schedule.Update) ([]domain.DayRecord, error)
	Save() error
	ClearAll() error
	RefreshNow() error
	Snapshot() (syncer.Snapshot, error)
}

type viewMode int

const (
	modeEdit viewMode = iota
	modeView
)

// deleter is implemented by backends that can drop a stored record.
type deleter interface {
	Delete(ctx context.Context, date string, employee domain.Employee) error
}

var errQuit = errors.New("quit")

type repl struct {
	engine  engine
	deleter deleter
	out     io.Writer
	mode    viewMode
	// empty means every employee
	filter  domain.Employee
}

func newREPL(e engine, out io.Writer) *repl {
	return &repl{engine: e, out: out}
}

const helpText = `commands:
  show                         print the current month
  edit | view                  switch between the full table and days with data
  next | prev                  move one month
  month YYYY-MM                jump to a month
  filter <employee|all>        show one employee
  set <day> <employee> <field> <value>
                               fields: s1start s1end s2start s2end (HH:MM or -),
                               shift2 (on|off), orders, bonus
  reset <day> <employee>       clear one record
  delete <day> <employee>      remove the stored record (remote backend)
  save                         push now
  clear                        reset the whole month
  refresh                      pull remote changes now
  status                       sync state
  quit
`

func (r *repl) run(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprint(r.out, helpText)
	r.prompt()
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := r.exec(line); err != nil {
				if errors.Is(err, errQuit) {
					return
				}
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
			r.prompt()
		}
	}
}

func (r *repl) prompt() {
	fmt.Fprint(r.out, "> ")
}

func (r *repl) exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	switch cmd, args := strings.ToLower(args[0]), args[1:]; cmd {
	case "help", "?":
		fmt.Fprint(r.out, helpText)
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "show", "ls":
		return r.show()
	case "edit":
		r.mode = modeEdit
		return r.show()
	case "view":
		r.mode = modeView
		return r.show()
	case "next", "prev":
		delta := 1
		if cmd == "prev" {
			delta = -1
		}
		snap, err := r.engine.Snapshot()
		if err != nil {
			return err
		}
		return r.load(schedule.ShiftMonth(snap.Month, delta))
	case "month":
		if len(args) != 1 {
			return errors.New("usage: month YYYY-MM")
		}
		month, err := schedule.ParseMonthKey(args[0])
		if err != nil {
			return err
		}
		return r.load(month)
	case "filter":
		if len(args) != 1 {
			return errors.New("usage: filter <employee|all>")
		}
		if strings.EqualFold(args[0], "all") {
			r.filter = ""
			return r.show()
		}
		employee, err := parseEmployee(args[0])
		if err != nil {
			return err
		}
		r.filter = employee
		return r.show()
	case "set":
		if len(args) != 4 {
			return errors.New("usage: set <day> <employee> <field> <value>")
		}
		u, err := parseUpdate(args[2], args[3])
		if err != nil {
			return err
		}
		return r.edit(args[0], args[1], u)
	case "reset":
		if len(args) != 2 {
			return errors.New("usage: reset <day> <employee>")
		}
		return r.edit(args[0], args[1], schedule.ResetRecord{})
	case "delete":
		if len(args) != 2 {
			return errors.New("usage: delete <day> <employee>")
		}
		return r.delete(args[0], args[1])
	case "save":
		return r.engine.Save()
	case "clear":
		if err := r.engine.ClearAll(); err != nil {
			return err
		}
		return r.show()
	case "refresh":
		return r.engine.RefreshNow()
	case "status":
		snap, err := r.engine.Snapshot()
		if err != nil {
			return err
		}
		renderStatus(r.out, snap)
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (r *repl) load(month schedule.MonthKey) error {
	if err := r.engine.Load(month); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "loading %s...\n", month)
	return nil
}

func (r *repl) show() error {
	snap, err := r.engine.Snapshot()
	if err != nil {
		return err
	}
	switch r.mode {
	case modeView:
		renderView(r.out, snap, r.filter)
	default:
		renderEdit(r.out, snap, r.filter)
	}
	return nil
}

func (r *repl) edit(dayArg, employeeArg string, u schedule.Update) error {
	employee, err := parseEmployee(employeeArg)
	if err != nil {
		return err
	}
	snap, err := r.engine.Snapshot()
	if err != nil {
		return err
	}
	date, err := dateOfDay(snap.Month, dayArg)
	if err != nil {
		return err
	}
	_, err = r.engine.Edit(date, employee, u)
	return err
}

// delete removes the stored record and pulls the month again, so the slot
// falls back to its default unless it has a pending local edit.
func (r *repl) delete(dayArg, employeeArg string) error {
	if r.deleter == nil {
		return errors.New("this backend cannot delete records")
	}
	employee, err := parseEmployee(employeeArg)
	if err != nil {
		return err
	}
	snap, err := r.engine.Snapshot()
	if err != nil {
		return err
	}
	date, err := dateOfDay(snap.Month, dayArg)
	if err != nil {
		return err
	}
	if err := r.deleter.Delete(context.Background(), date, employee); err != nil {
		return err
	}
	return r.engine.RefreshNow()
}

// parseEmployee accepts the roster key or the display name.
func parseEmployee(s string) (domain.Employee, error) {
	for _, e := range domain.Employees {
		if strings.EqualFold(s, string(e)) || strings.EqualFold(s, e.DisplayName()) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown employee %q", s)
}

func dateOfDay(month schedule.MonthKey, s string) (string, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > schedule.DaysInMonth(month) {
		return "", fmt.Errorf("day must be between 1 and %d", schedule.DaysInMonth(month))
	}
	return fmt.Sprintf("%s-%02d", month, day), nil
}

var shiftFields = map[string]schedule.ShiftField{
	"s1start": schedule.Shift1Start,
	"s1end":   schedule.Shift1End,
	"s2start": schedule.Shift2Start,
	"s2end":   schedule.Shift2End,
}

func parseUpdate(field, value string) (schedule.Update, error) {
	field = strings.ToLower(field)
	if f, ok := shiftFields[field]; ok {
		if value == "-" {
			value = ""
		}
		return schedule.SetShiftTime{Field: f, Time: value}, nil
	}

	switch field {
	case "shift2":
		switch strings.ToLower(value) {
		case "on", "yes", "true":
			return schedule.SetShift2Enabled{Enabled: true}, nil
		case "off", "no", "false":
			return schedule.SetShift2Enabled{Enabled: false}, nil
		}
		return nil, fmt.Errorf("shift2 must be on or off, got %q", value)
	case "orders":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("orders must be a whole number, got %q", value)
		}
		return schedule.SetOrders{Orders: n}, nil
	case "bonus":
		b, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("bonus must be a number, got %q", value)
		}
		return schedule.SetBonus{Bonus: b}, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}
