/*
Package seed provides the demo roster for local development.

PURPOSE:
  Loads a small, known dataset into a directory so the API can be
  exercised without any setup: one manager and two reports with
  contrasting balances and tenure (one above, one below the ten-year
  UEL threshold; one male, two female for maternity eligibility).
*/
package seed

import (
	"github.com/warp/leave-engine/directory"
	"github.com/warp/leave-engine/leave"
)

// Roster returns the demo employees. Balances are intentionally uneven so
// policy edges (UEL tiers, maternity, encashment floors) are reachable.
func Roster() []leave.Employee {
	maternityFull := 365

	return []leave.Employee{
		{
			ID:           "1",
			Name:         "John Doe",
			Email:        "john@company.com",
			Role:         leave.RoleEmployee,
			ManagerID:    "2",
			ServiceYears: 5,
			Gender:       leave.GenderMale,
			Balance:      leave.LeaveBalance{CL: 12, EL: 30, ML: 12, UEL: 45},
		},
		{
			ID:           "2",
			Name:         "Jane Manager",
			Email:        "jane@company.com",
			Role:         leave.RoleManager,
			ServiceYears: 8,
			Gender:       leave.GenderFemale,
			Balance:      leave.LeaveBalance{CL: 12, EL: 25, ML: 10, UEL: 45, Maternity: &maternityFull},
		},
		{
			ID:           "3",
			Name:         "Alice Employee",
			Email:        "alice@company.com",
			Role:         leave.RoleEmployee,
			ManagerID:    "2",
			ServiceYears: 12,
			Gender:       leave.GenderFemale,
			Balance:      leave.LeaveBalance{CL: 8, EL: 28, ML: 15, UEL: 90, Maternity: &maternityFull},
		},
	}
}

// Load installs the demo roster into dir and signs in the first employee.
func Load(dir *directory.Directory) error {
	for _, emp := range Roster() {
		if err := dir.Add(emp); err != nil {
			return err
		}
	}
	dir.SwitchUser("1")
	return nil
}
