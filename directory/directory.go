/*
Package directory owns the employee roster and the acting-user session.

PURPOSE:
  The Directory is the single owner of Employee records (including each
  employee's LeaveBalance). The balance ledger mutates balances in place
  through WithEmployee, which holds the directory lock for the whole
  read-modify-write - that is the atomicity unit that keeps two
  simultaneous approvals from double-deducting.

SESSION:
  CurrentUser/SwitchUser track which employee is acting. This is a
  stand-in for authentication: switching to an unknown id yields "no
  current user", not an error. A deployment exposing the engine over the
  network replaces this with a real session layer in front of the API -
  it must not be extended into one.

SEE ALSO:
  - store/ledger.go: The only caller of WithEmployee
  - pubsub: The replay-then-push session stream
*/
package directory

import (
	"fmt"
	"sync"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/pubsub"
)

// =============================================================================
// DIRECTORY - Roster plus session
// =============================================================================

type Directory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*leave.Employee

	currentID  string
	hasCurrent bool
	session    *pubsub.Subject[*leave.Employee]
}

func New() *Directory {
	return &Directory{
		byID:    make(map[string]*leave.Employee),
		session: pubsub.NewSubject[*leave.Employee](),
	}
}

// Add appends an employee to the roster. IDs are unique.
func (d *Directory) Add(emp leave.Employee) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byID[emp.ID]; exists {
		return fmt.Errorf("duplicate employee id %q", emp.ID)
	}
	emp.Balance = emp.Balance.Clone()
	d.byID[emp.ID] = &emp
	d.order = append(d.order, emp.ID)
	return nil
}

// Get returns a copy of the employee with the given id.
func (d *Directory) Get(id string) (leave.Employee, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	emp, ok := d.byID[id]
	if !ok {
		return leave.Employee{}, false
	}
	return snapshot(emp), true
}

// List returns copies of all employees in insertion order.
func (d *Directory) List() []leave.Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]leave.Employee, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, snapshot(d.byID[id]))
	}
	return out
}

// WithEmployee runs fn with exclusive access to the live employee record.
// The directory lock is held for the duration, so a validate-then-deduct
// sequence inside fn cannot interleave with another mutation of the same
// balance. Returns leave.ErrEmployeeNotFound for unknown ids.
func (d *Directory) WithEmployee(id string, fn func(*leave.Employee) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.byID[id]
	if !ok {
		return leave.ErrEmployeeNotFound
	}
	return fn(emp)
}

// =============================================================================
// SESSION
// =============================================================================

// SwitchUser sets the acting employee. An unknown id clears the session
// (no current user) rather than failing.
func (d *Directory) SwitchUser(id string) {
	d.mu.Lock()
	emp, ok := d.byID[id]
	if ok {
		d.currentID = id
		d.hasCurrent = true
	} else {
		d.currentID = ""
		d.hasCurrent = false
	}
	var snap *leave.Employee
	if ok {
		s := snapshot(emp)
		snap = &s
	}
	d.mu.Unlock()

	d.session.Publish(snap)
}

// CurrentUser returns a copy of the acting employee, if any.
func (d *Directory) CurrentUser() (leave.Employee, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.hasCurrent {
		return leave.Employee{}, false
	}
	emp, ok := d.byID[d.currentID]
	if !ok {
		return leave.Employee{}, false
	}
	return snapshot(emp), true
}

// CurrentUserStream is the observable session: replays the latest acting
// employee (nil = none) to new subscribers, then pushes every switch.
func (d *Directory) CurrentUserStream() (<-chan *leave.Employee, func()) {
	return d.session.Subscribe()
}

func snapshot(emp *leave.Employee) leave.Employee {
	copy := *emp
	copy.Balance = emp.Balance.Clone()
	return copy
}
