package domain

// Employee identifies one member of the fixed roster.
type Employee string

const (
	EmployeeNikita Employee = "nikita"
	EmployeeAndrey Employee = "andrey"
	EmployeeDenis  Employee = "denis"
)

// Employees is the closed roster in display order.
var Employees = []Employee{
	EmployeeNikita,
	EmployeeAndrey,
	EmployeeDenis,
}

var employeeNames = map[Employee]string{
	EmployeeNikita: "Никита",
	EmployeeAndrey: "Андрей",
	EmployeeDenis:  "Денис",
}

func (e Employee) DisplayName() string {
	if name, ok := employeeNames[e]; ok {
		return name
	}
	return string(e)
}

func (e Employee) Valid() bool {
	_, ok := employeeNames[e]
	return ok
}
